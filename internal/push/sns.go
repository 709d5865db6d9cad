package push

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSSender publishes notifications to an SNS topic subscribed to by
// the mobile push endpoints. Best-effort: the caller logs and swallows
// failures, nothing is retried.
type SNSSender struct {
	svc      *sns.Client
	topicArn string
}

// NewSNSSender builds a sender for the given region and topic ARN.
func NewSNSSender(ctx context.Context, region, topicArn string) (*SNSSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &SNSSender{
		svc:      sns.NewFromConfig(cfg),
		topicArn: topicArn,
	}, nil
}

// Send publishes one notification. Attrs become SNS message attributes
// so subscribers can filter by alert type.
func (s *SNSSender) Send(ctx context.Context, title, message string, attrs map[string]string) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(s.topicArn),
		Subject:  aws.String(title),
		Message:  aws.String(message),
	}
	if len(attrs) > 0 {
		input.MessageAttributes = make(map[string]types.MessageAttributeValue, len(attrs))
		for k, v := range attrs {
			input.MessageAttributes[k] = types.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(v),
			}
		}
	}

	if _, err := s.svc.Publish(ctx, input); err != nil {
		return fmt.Errorf("publish to SNS: %w", err)
	}
	return nil
}
