// Package policy holds the ownership and quota rules the CLI enforces on every
// resource it touches. A Policy is an immutable value built once at startup and
// handed to each manager.
package policy

import (
	"slices"
	"strings"
)

const (
	DefaultCreatedBy  = "platform-cli"
	DefaultOwner      = "duvie"
	DefaultMaxRunning = 2
)

// Tag is a key/value pair attached to a remote resource.
type Tag struct {
	Key   string
	Value string
}

type TagSet []Tag

// Map returns the tag set as a key/value map. Later duplicates win.
func (t TagSet) Map() map[string]string {
	out := make(map[string]string, len(t))
	for _, tag := range t {
		out[tag.Key] = tag.Value
	}
	return out
}

// Policy describes what makes a resource CLI-owned and how much compute the CLI
// may keep running.
type Policy struct {
	ownership            TagSet
	allowedInstanceTypes []string
	maxRunning           int
	images               map[string]string
}

// Default returns the built-in policy.
func Default() Policy {
	return Policy{
		ownership: TagSet{
			{Key: "CreatedBy", Value: DefaultCreatedBy},
			{Key: "Owner", Value: DefaultOwner},
		},
		allowedInstanceTypes: []string{"t3.micro", "t2.small"},
		maxRunning:           DefaultMaxRunning,
		images: map[string]string{
			"ubuntu":       "/aws/service/canonical/ubuntu/server/22.04/stable/current/amd64/hvm/ebs-gp2/ami-id",
			"amazon-linux": "/aws/service/ami-amazon-linux-latest/al2023-ami-kernel-6.1-x86_64",
		},
	}
}

// New builds a policy from explicit values. Empty arguments fall back to the
// defaults so callers only override what they care about.
func New(ownership TagSet, allowedInstanceTypes []string, maxRunning int, images map[string]string) Policy {
	p := Default()
	if len(ownership) > 0 {
		p.ownership = slices.Clone(ownership)
	}
	if len(allowedInstanceTypes) > 0 {
		p.allowedInstanceTypes = slices.Clone(allowedInstanceTypes)
	}
	if maxRunning > 0 {
		p.maxRunning = maxRunning
	}
	if len(images) > 0 {
		p.images = make(map[string]string, len(images))
		for name, param := range images {
			p.images[strings.ToLower(name)] = param
		}
	}
	return p
}

// OwnershipTags returns a copy of the tag set every CLI-owned resource carries.
func (p Policy) OwnershipTags() TagSet {
	return slices.Clone(p.ownership)
}

// Satisfies reports whether candidate contains every ownership pair with an
// identical value.
func (p Policy) Satisfies(candidate []Tag) bool {
	if len(candidate) == 0 || len(p.ownership) == 0 {
		return false
	}
	have := TagSet(candidate).Map()
	for _, want := range p.ownership {
		got, ok := have[want.Key]
		if !ok || got != want.Value {
			return false
		}
	}
	return true
}

func (p Policy) AllowedInstanceTypes() []string {
	return slices.Clone(p.allowedInstanceTypes)
}

func (p Policy) InstanceTypeAllowed(instanceType string) bool {
	return slices.Contains(p.allowedInstanceTypes, instanceType)
}

func (p Policy) MaxRunning() int {
	return p.maxRunning
}

// ImageParameter returns the parameter-store path holding the latest machine
// image for osName. Lookup is case-insensitive and ignores surrounding space.
func (p Policy) ImageParameter(osName string) (string, bool) {
	param, ok := p.images[strings.ToLower(strings.TrimSpace(osName))]
	return param, ok
}

// ImageNames returns the supported OS names in sorted order.
func (p Policy) ImageNames() []string {
	names := make([]string, 0, len(p.images))
	for name := range p.images {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
