package aws_test

import (
	"context"
	"errors"
	awsProvider "platform-cli/pkg/services/provider/aws"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSSM struct {
	output *ssm.GetParameterOutput
	err    error
	names  []string
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.names = append(f.names, aws.ToString(in.Name))
	return f.output, f.err
}

func TestParameterResolver_ResolveParameter(t *testing.T) {
	path := "/aws/service/canonical/ubuntu/server/22.04/stable/current/amd64/hvm/ebs-gp2/ami-id"
	client := &fakeSSM{output: &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String("ami-123")}}}

	value, err := awsProvider.NewParameterResolver(client).ResolveParameter(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "ami-123", value)
	assert.Equal(t, []string{path}, client.names)
}

func TestParameterResolver_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeSSM
		errMsg string
	}{
		{
			name:   "remote failure",
			client: &fakeSSM{err: errors.New("ParameterNotFound")},
			errMsg: "Failed to read parameter /missing",
		},
		{
			name:   "empty parameter",
			client: &fakeSSM{output: &ssm.GetParameterOutput{}},
			errMsg: "parameter /missing has no value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := awsProvider.NewParameterResolver(tt.client).ResolveParameter(context.Background(), "/missing")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
