// Package manager implements the CLI's operations on compute instances,
// storage buckets and DNS zones. Every operation on an existing resource is
// gated on the ownership policy before any remote mutation is attempted.
package manager

import (
	"context"
	"iter"
	"log/slog"
	"platform-cli/pkg/services/clierr"
	"platform-cli/pkg/services/guard"
	"platform-cli/pkg/services/policy"
	"platform-cli/pkg/services/provider"
	"strings"
)

const instanceStateRunning = "running"

type ComputeManager struct {
	gateway provider.ComputeGateway
	images  provider.ImageResolver
	policy  policy.Policy
	quota   *guard.QuotaGuard
}

func NewComputeManager(gateway provider.ComputeGateway, images provider.ImageResolver, p policy.Policy) *ComputeManager {
	return &ComputeManager{
		gateway: gateway,
		images:  images,
		policy:  p,
		quota:   guard.NewQuotaGuard(p),
	}
}

// Create launches one instance of instanceType running the latest image for
// osName, tagged with the ownership tags.
func (c *ComputeManager) Create(ctx context.Context, instanceType, osName string) (provider.Instance, error) {
	if !c.policy.InstanceTypeAllowed(instanceType) {
		return provider.Instance{}, clierr.InvalidArgument("instance type must be one of %s", quoteList(c.policy.AllowedInstanceTypes()))
	}

	running, err := c.countRunning(ctx)
	if err != nil {
		return provider.Instance{}, err
	}
	if err := c.quota.CheckCapacity(running); err != nil {
		return provider.Instance{}, err
	}

	imageID, err := c.latestImage(ctx, osName)
	if err != nil {
		return provider.Instance{}, err
	}

	slog.Debug("Launching instance", "prefix", "manager.ComputeManager.Create", "instance_type", instanceType, "image", imageID)
	instance, err := c.gateway.RunInstance(ctx, provider.RunInstanceInput{
		InstanceType: instanceType,
		ImageID:      imageID,
		Tags:         c.policy.OwnershipTags(),
	})
	if err != nil {
		return provider.Instance{}, clierr.Remote(err, "failed to create instance")
	}
	if instance.State == "" {
		instance.State = "pending"
	}
	return instance, nil
}

func (c *ComputeManager) countRunning(ctx context.Context) (int, error) {
	instances, err := c.gateway.DescribeInstances(ctx, provider.InstanceFilter{
		Tags:   c.policy.OwnershipTags(),
		States: []string{instanceStateRunning},
	})
	if err != nil {
		return 0, clierr.Remote(err, "could not count running instances")
	}
	return len(instances), nil
}

func (c *ComputeManager) latestImage(ctx context.Context, osName string) (string, error) {
	param, ok := c.policy.ImageParameter(osName)
	if !ok {
		return "", clierr.New(clierr.ErrResolution, "could not resolve latest AMI (invalid OS %q, use %s)", osName, quoteList(c.policy.ImageNames()))
	}
	imageID, err := c.images.ResolveParameter(ctx, param)
	if err != nil {
		return "", clierr.Wrap(clierr.ErrResolution, err, "could not resolve latest AMI for %s", osName)
	}
	if imageID == "" {
		return "", clierr.New(clierr.ErrResolution, "parameter %s holds no image id", param)
	}
	return imageID, nil
}

func (c *ComputeManager) Start(ctx context.Context, instanceID string) error {
	if err := c.checkOwned(ctx, instanceID); err != nil {
		return err
	}
	if err := c.gateway.StartInstance(ctx, instanceID); err != nil {
		return clierr.Remote(err, "failed to start instance %s", instanceID)
	}
	return nil
}

func (c *ComputeManager) Stop(ctx context.Context, instanceID string) error {
	if err := c.checkOwned(ctx, instanceID); err != nil {
		return err
	}
	if err := c.gateway.StopInstance(ctx, instanceID); err != nil {
		return clierr.Remote(err, "failed to stop instance %s", instanceID)
	}
	return nil
}

// checkOwned asks the provider for an instance matching both the id and the
// ownership tags. No match means not owned, whether or not the id exists.
func (c *ComputeManager) checkOwned(ctx context.Context, instanceID string) error {
	if strings.TrimSpace(instanceID) == "" {
		return clierr.InvalidArgument("instance id is required")
	}
	matches, err := c.gateway.DescribeInstances(ctx, provider.InstanceFilter{
		InstanceID: instanceID,
		Tags:       c.policy.OwnershipTags(),
	})
	if err != nil {
		return clierr.Remote(err, "could not look up instance %s", instanceID)
	}
	if len(matches) == 0 {
		return clierr.NotOwned("instance %s not managed by this CLI", instanceID)
	}
	return nil
}

// List yields the CLI-owned instances. The provider filters on the ownership
// tags, so no client-side check is repeated. Each range over the sequence
// issues a fresh describe call.
func (c *ComputeManager) List(ctx context.Context) iter.Seq2[provider.Instance, error] {
	return func(yield func(provider.Instance, error) bool) {
		instances, err := c.gateway.DescribeInstances(ctx, provider.InstanceFilter{
			Tags: c.policy.OwnershipTags(),
		})
		if err != nil {
			yield(provider.Instance{}, clierr.Remote(err, "could not list instances"))
			return
		}
		for _, instance := range instances {
			if !yield(instance, nil) {
				return
			}
		}
	}
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
