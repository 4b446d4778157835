// internal/tags/resolver.go

// Package tags resolves the display-name override for a monitored function
// from its Lambda tags.
package tags

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// displayNameTag is the tag key holding a human-friendly name for report
// subjects.
const displayNameTag = "DISPLAY_NAME"

// FunctionAPI is the slice of the Lambda client the resolver needs.
type FunctionAPI interface {
	GetFunction(ctx context.Context, params *lambda.GetFunctionInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error)
}

// Resolver looks up display-name overrides from function tags.
type Resolver struct {
	client FunctionAPI
}

// NewResolver creates a tag resolver backed by the given Lambda client.
func NewResolver(client FunctionAPI) *Resolver {
	return &Resolver{client: client}
}

// DisplayName returns the function's DISPLAY_NAME tag value, or "" when the
// tag is not set.
func (r *Resolver) DisplayName(ctx context.Context, functionName string) (string, error) {
	output, err := r.client.GetFunction(ctx, &lambda.GetFunctionInput{
		FunctionName: aws.String(functionName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get function %s: %w", functionName, err)
	}
	return output.Tags[displayNameTag], nil
}
