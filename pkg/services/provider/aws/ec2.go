package aws

import (
	"context"
	"fmt"
	"platform-cli/pkg/services/policy"
	"platform-cli/pkg/services/provider"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/pkg/errors"
)

// EC2API is the subset of the EC2 client the compute gateway calls.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	RunInstances(ctx context.Context, params *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error)
	StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
}

// EC2Gateway implements provider.ComputeGateway.
type EC2Gateway struct {
	client EC2API
}

func NewEC2Gateway(client EC2API) *EC2Gateway {
	return &EC2Gateway{client: client}
}

// ec2Filters converts a filter into EC2 describe filters. Tag pairs become
// "tag:<key>" filters so ownership is evaluated by EC2 itself.
func ec2Filters(filter provider.InstanceFilter) []types.Filter {
	filters := []types.Filter{}
	if filter.InstanceID != "" {
		filters = append(filters, types.Filter{
			Name:   aws.String("instance-id"),
			Values: []string{filter.InstanceID},
		})
	}
	for _, tag := range filter.Tags {
		filters = append(filters, types.Filter{
			Name:   aws.String("tag:" + tag.Key),
			Values: []string{tag.Value},
		})
	}
	if len(filter.States) > 0 {
		filters = append(filters, types.Filter{
			Name:   aws.String("instance-state-name"),
			Values: filter.States,
		})
	}
	return filters
}

func (g *EC2Gateway) DescribeInstances(ctx context.Context, filter provider.InstanceFilter) ([]provider.Instance, error) {
	output, err := g.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: ec2Filters(filter),
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to describe ec2 instances")
	}

	var instances []provider.Instance
	for _, reservation := range output.Reservations {
		for _, instance := range reservation.Instances {
			instances = append(instances, toInstance(instance))
		}
	}
	return instances, nil
}

func (g *EC2Gateway) RunInstance(ctx context.Context, input provider.RunInstanceInput) (provider.Instance, error) {
	output, err := g.client.RunInstances(ctx, &ec2.RunInstancesInput{
		ImageId:      aws.String(input.ImageID),
		InstanceType: types.InstanceType(input.InstanceType),
		MinCount:     aws.Int32(1),
		MaxCount:     aws.Int32(1),
		TagSpecifications: []types.TagSpecification{
			{
				ResourceType: types.ResourceTypeInstance,
				Tags:         toEC2Tags(input.Tags),
			},
		},
	})
	if err != nil {
		return provider.Instance{}, errors.Wrap(err, "Failed to run ec2 instance")
	}
	if len(output.Instances) == 0 {
		return provider.Instance{}, fmt.Errorf("run instances returned no instance")
	}
	return toInstance(output.Instances[0]), nil
}

func (g *EC2Gateway) StartInstance(ctx context.Context, instanceID string) error {
	_, err := g.client.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{instanceID},
	})
	return errors.Wrap(err, "Failed to start ec2 instance")
}

func (g *EC2Gateway) StopInstance(ctx context.Context, instanceID string) error {
	_, err := g.client.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{instanceID},
	})
	return errors.Wrap(err, "Failed to stop ec2 instance")
}

func toInstance(instance types.Instance) provider.Instance {
	out := provider.Instance{
		ID:      aws.ToString(instance.InstanceId),
		Type:    string(instance.InstanceType),
		ImageID: aws.ToString(instance.ImageId),
	}
	if instance.State != nil {
		out.State = string(instance.State.Name)
	}
	for _, tag := range instance.Tags {
		out.Tags = append(out.Tags, policy.Tag{Key: aws.ToString(tag.Key), Value: aws.ToString(tag.Value)})
	}
	return out
}

func toEC2Tags(tags []policy.Tag) []types.Tag {
	out := make([]types.Tag, 0, len(tags))
	for _, tag := range tags {
		out = append(out, types.Tag{Key: aws.String(tag.Key), Value: aws.String(tag.Value)})
	}
	return out
}
