package events

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-aws/sns"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	amazonsns "github.com/aws/aws-sdk-go-v2/service/sns"
	smithyendpoints "github.com/aws/smithy-go/endpoints"
)

// AWSSink publishes events to SNS topics named after the topic.
const AWSSink = "aws"

const (
	localstackAccountID = "000000000000"
	awsAccountIDLength  = 12
)

// AWSConfigLoader allows overriding the AWS config loader for testing.
var AWSConfigLoader = awsconfig.LoadDefaultConfig

// SNSTopicResolverFactory allows overriding the topic resolver creation for testing.
var SNSTopicResolverFactory = sns.NewGenerateArnTopicResolver

// SNSPublisherFactory allows overriding the publisher creation for testing.
var SNSPublisherFactory = func(cfg sns.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return sns.NewPublisher(cfg, logger)
}

// BuildAWS creates an SNS publisher.
func BuildAWS(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (message.Publisher, error) {
	if cfg.GetAWSRegion() == "" {
		return nil, errors.New("aws: region is required")
	}

	awsCfg, err := loadAWSConfig(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	accountID, region := resolveAccountAndRegion(cfg, logger, awsCfg.Region)
	logger.Info("Create SNS events publisher", watermill.LogFields{
		"accountID": accountID,
		"region":    region,
	})

	topicResolver, err := SNSTopicResolverFactory(accountID, region)
	if err != nil {
		return nil, fmt.Errorf("create SNS topic resolver: %w", err)
	}

	optFns, err := snsEndpointOptions(cfg)
	if err != nil {
		return nil, err
	}

	return SNSPublisherFactory(sns.PublisherConfig{
		TopicResolver: topicResolver,
		AWSConfig:     awsCfg,
		OptFns:        optFns,
		Marshaler:     sns.DefaultMarshalerUnmarshaler{},
	}, logger)
}

func loadAWSConfig(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.GetAWSRegion())}

	accessKey, secretKey := cfg.GetAWSAccessKeyID(), cfg.GetAWSSecretAccessKey()
	if accessKey != "" && secretKey != "" {
		logger.Info("Using static AWS credentials from config", watermill.LogFields{})
		opts = append(opts, awsconfig.WithCredentialsProvider(staticCredentialsProvider(accessKey, secretKey)))
	}

	awsCfg, err := AWSConfigLoader(ctx, opts...)
	if err != nil {
		logger.Error("Failed to load AWS default config", err, watermill.LogFields{"requested_region": cfg.GetAWSRegion()})
		return aws.Config{}, err
	}
	// Ensure region is set even if the loader ignores options
	awsCfg.Region = cfg.GetAWSRegion()
	return awsCfg, nil
}

// snsEndpointOptions points the SNS client at AWSEndpoint, for example
// LocalStack. No endpoint means the regional AWS endpoint.
func snsEndpointOptions(cfg Config) ([]func(*amazonsns.Options), error) {
	raw := cfg.GetAWSEndpoint()
	if raw == "" {
		return nil, nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse AWS endpoint: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("failed to parse AWS endpoint: %q is not an absolute URL", raw)
	}
	return []func(*amazonsns.Options){
		amazonsns.WithEndpointResolverV2(sns.OverrideEndpointResolver{
			Endpoint: smithyendpoints.Endpoint{URI: *parsed},
		}),
	}, nil
}

func resolveAccountAndRegion(cfg Config, logger watermill.LoggerAdapter, fallbackRegion string) (string, string) {
	accountID := strings.Trim(cfg.GetAWSAccountID(), "\"' ")
	region := cfg.GetAWSRegion()
	if region == "" {
		region = fallbackRegion
	}

	localstack := cfg.GetAWSEndpoint() != ""
	if accountID == "" && localstack {
		logger.Info("AWS account ID empty; using LocalStack default", watermill.LogFields{"accountID": localstackAccountID})
		return localstackAccountID, region
	}
	if accountID != "" && len(accountID) != awsAccountIDLength && localstack {
		logger.Info("Invalid AWS account ID; falling back to LocalStack default", watermill.LogFields{"accountID": accountID})
		accountID = localstackAccountID
	}
	return accountID, region
}

func staticCredentialsProvider(accessKeyID, secretAccessKey string) aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     accessKeyID,
			SecretAccessKey: secretAccessKey,
		}, nil
	})
}
