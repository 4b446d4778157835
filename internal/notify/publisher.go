// internal/notify/publisher.go

// Package notify delivers run notifications to the reporting SNS topic.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"

	"lambda-monitor/internal/models"
)

// dryRunMessageID is the synthetic acknowledgement returned when publishing
// is skipped in dry-run mode.
const dryRunMessageID = "12345"

// PublishAPI is the slice of the SNS client the publisher needs.
type PublishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Publisher sends notifications to a fixed topic, or logs them instead in
// dry-run mode.
type Publisher struct {
	client   PublishAPI
	topicARN string
	dryRun   bool
	log      *zap.Logger
}

// NewPublisher creates a publisher for the given topic.
func NewPublisher(client PublishAPI, topicARN string, dryRun bool, log *zap.Logger) *Publisher {
	return &Publisher{client: client, topicARN: topicARN, dryRun: dryRun, log: log}
}

// Publish sends one notification and returns the message id acknowledged by
// SNS. In dry-run mode the notification is logged and a fixed synthetic id
// is returned without contacting SNS.
func (p *Publisher) Publish(ctx context.Context, n *models.Notification) (string, error) {
	log := p.log.With(zap.String("topic_arn", p.topicARN))
	logNotification := log.Debug
	if p.dryRun {
		logNotification = log.Info
	}
	logNotification("composed notification",
		zap.String("subject", n.Subject),
		zap.Any("attributes", n.Attributes),
		zap.String("body", n.Body),
	)

	if p.dryRun {
		log.Info("dry run, skipping publish", zap.String("message_id", dryRunMessageID))
		return dryRunMessageID, nil
	}

	attributes := make(map[string]types.MessageAttributeValue, len(n.Attributes))
	for name, value := range n.Attributes {
		attributes[name] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(value),
		}
	}

	output, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn:          aws.String(p.topicARN),
		Subject:           aws.String(n.Subject),
		Message:           aws.String(n.Body),
		MessageAttributes: attributes,
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish notification: %w", err)
	}

	messageID := aws.ToString(output.MessageId)
	log.Info("published message", zap.String("message_id", messageID))
	return messageID, nil
}
