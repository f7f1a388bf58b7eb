// Package aws implements the provider gateways on top of the AWS SDK v2:
// EC2 for compute, SSM for image lookup, S3 for storage and Route 53 for DNS.
package aws

import (
	"context"
	"platform-cli/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	aConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/pkg/errors"
)

// Session is the per-invocation AWS configuration shared by every gateway.
type Session struct {
	Config aws.Config
	// pathStyle is set for custom endpoints, which rarely support virtual
	// hosted bucket addressing.
	pathStyle bool
}

// NewSession loads the SDK configuration for the given profile and region.
// Bad credentials or regions only surface on the first remote call.
func NewSession(ctx context.Context, cfg *config.AWSConfig) (*Session, error) {
	region := cfg.Region
	if region == "" {
		region = config.DefaultRegion
	}

	opts := []func(*aConfig.LoadOptions) error{
		aConfig.WithRegion(region),
	}
	if len(cfg.CredentialPath) > 0 {
		opts = append(opts, aConfig.WithSharedCredentialsFiles(cfg.CredentialPath))
	}
	if len(cfg.ConfigPath) > 0 {
		opts = append(opts, aConfig.WithSharedConfigFiles(cfg.ConfigPath))
	}
	if cfg.Endpoint != "" {
		opts = append(opts,
			aConfig.WithBaseEndpoint(cfg.Endpoint),
			aConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")))
	} else if cfg.ProfileName != "" && len(cfg.CredentialPath)+len(cfg.ConfigPath) > 0 {
		// without shared files credentials come from the environment
		opts = append(opts, aConfig.WithSharedConfigProfile(cfg.ProfileName))
	}

	awsConfig, err := aConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to load AWS configuration")
	}
	return &Session{Config: awsConfig, pathStyle: cfg.Endpoint != ""}, nil
}

func (s *Session) Region() string {
	return s.Config.Region
}

func (s *Session) Compute() *EC2Gateway {
	return NewEC2Gateway(ec2.NewFromConfig(s.Config))
}

func (s *Session) Images() *ParameterResolver {
	return NewParameterResolver(ssm.NewFromConfig(s.Config))
}

func (s *Session) Storage() *S3Gateway {
	return NewS3Gateway(s3.NewFromConfig(s.Config, func(o *s3.Options) {
		o.UsePathStyle = s.pathStyle
	}))
}

func (s *Session) DNS() *Route53Gateway {
	return NewRoute53Gateway(route53.NewFromConfig(s.Config))
}
