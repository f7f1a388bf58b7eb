package cmd

import (
	"errors"
	"iter"
	"platform-cli/pkg/services/clierr"
	"platform-cli/pkg/services/provider"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateEC2(t *testing.T) {
	h := newHarness(t)
	h.compute.On("Create", mock.Anything, "t3.micro", "ubuntu").
		Return(provider.Instance{ID: "i-123", State: "pending"}, nil)

	out := h.run("create-ec2")
	assert.Equal(t, "Success: created instance i-123 (state: pending).\n", out)
	h.compute.AssertExpectations(t)
}

func TestCreateEC2_RejectedType(t *testing.T) {
	h := newHarness(t)
	h.compute.On("Create", mock.Anything, "m5.large", "amazon-linux").
		Return(provider.Instance{}, clierr.InvalidArgument("instance type must be 't3.micro' or 't2.small'"))

	out := h.run("create-ec2", "--instance_type", "m5.large", "--os_name", "amazon-linux")
	assert.Equal(t, "Error: instance type must be 't3.micro' or 't2.small'.\n", out)
}

func TestStartEC2_PromptsForInstanceID(t *testing.T) {
	h := newHarness(t)
	h.stdin = "\ni-abc\n"
	h.compute.On("Start", mock.Anything, "i-abc").Return(nil)

	out := h.run("start-ec2")
	assert.Equal(t, "Instance id: Instance id: Success: starting instance i-abc.\n", out)
}

func TestStopEC2(t *testing.T) {
	h := newHarness(t)
	h.compute.On("Stop", mock.Anything, "i-1").Return(clierr.NotOwned("instance i-1 not managed by this CLI"))

	out := h.run("stop-ec2", "--instance_id", "i-1")
	assert.Equal(t, "Error: instance i-1 not managed by this CLI.\n", out)
}

func TestListEC2(t *testing.T) {
	h := newHarness(t)
	h.compute.On("List", mock.Anything).Return(instances(
		provider.Instance{ID: "i-1", State: "running"},
		provider.Instance{ID: "i-2", State: "stopped"},
	))

	out := h.run("list-ec2")
	assert.Equal(t, "i-1 - running\ni-2 - stopped\n", out)
}

func TestListEC2_Empty(t *testing.T) {
	h := newHarness(t)
	h.compute.On("List", mock.Anything).Return(instances())

	assert.Equal(t, "No instances created by this CLI.\n", h.run("list-ec2"))
}

func TestListEC2_Failure(t *testing.T) {
	h := newHarness(t)
	var failing iter.Seq2[provider.Instance, error] = func(yield func(provider.Instance, error) bool) {
		yield(provider.Instance{}, clierr.Remote(errors.New("throttled"), "could not list instances"))
	}
	h.compute.On("List", mock.Anything).Return(failing)

	assert.Equal(t, "Error: could not list instances (throttled).\n", h.run("list-ec2"))
}
