package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/pkg/errors"
)

type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ParameterResolver reads public SSM parameters such as the latest AMI ids.
type ParameterResolver struct {
	client SSMAPI
}

func NewParameterResolver(client SSMAPI) *ParameterResolver {
	return &ParameterResolver{client: client}
}

func (r *ParameterResolver) ResolveParameter(ctx context.Context, path string) (string, error) {
	output, err := r.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(path),
	})
	if err != nil {
		return "", errors.Wrap(err, fmt.Sprintf("Failed to read parameter %s", path))
	}
	if output.Parameter == nil {
		return "", fmt.Errorf("parameter %s has no value", path)
	}
	return aws.ToString(output.Parameter.Value), nil
}
