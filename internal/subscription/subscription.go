// internal/subscription/subscription.go

// Package subscription decodes CloudWatch Logs subscription notifications.
// The aws-lambda-go events types carry the outer envelope, but their parsed
// form drops the extractedFields the subscription filter pattern produces,
// so the compressed payload is decoded here instead.
package subscription

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"lambda-monitor/internal/models"
)

// lambdaLogGroupPrefix is the fixed prefix CloudWatch uses for Lambda
// function log groups.
const lambdaLogGroupPrefix = "/aws/lambda/"

// ErrNotLambdaLogGroup indicates the subscription is attached to a log group
// that does not belong to a Lambda function.
var ErrNotLambdaLogGroup = errors.New("log group is not a lambda")

// Data is the decompressed subscription payload.
type Data struct {
	Owner               string            `json:"owner"`
	LogGroup            string            `json:"logGroup"`
	LogStream           string            `json:"logStream"`
	SubscriptionFilters []string          `json:"subscriptionFilters"`
	MessageType         string            `json:"messageType"`
	LogEvents           []models.LogEvent `json:"logEvents"`
}

// Parse decodes the base64-encoded, gzip-compressed payload of a CloudWatch
// Logs trigger event.
func Parse(event events.CloudwatchLogsEvent) (*Data, error) {
	compressed, err := base64.StdEncoding.DecodeString(event.AWSLogs.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode subscription payload: %w", err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress subscription payload: %w", err)
	}
	defer zr.Close()

	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress subscription payload: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subscription payload: %w", err)
	}
	return &data, nil
}

// FunctionName derives the monitored function's name from the subscription's
// log group. A log group outside the Lambda prefix is a configuration error
// for the whole batch.
func (d *Data) FunctionName() (string, error) {
	name, ok := strings.CutPrefix(d.LogGroup, lambdaLogGroupPrefix)
	if !ok || name == "" {
		return "", fmt.Errorf("%w: %s", ErrNotLambdaLogGroup, d.LogGroup)
	}
	return name, nil
}

// Location returns where this batch's events live in CloudWatch Logs.
func (d *Data) Location() models.LogLocation {
	return models.LogLocation{GroupName: d.LogGroup, StreamName: d.LogStream}
}
