package provider

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate
import (
	"context"
	"io"
	"platform-cli/pkg/services/policy"
	"strings"
)

// FetchStatus classifies the result of looking up a resource's tags.
type FetchStatus int

const (
	FetchFound FetchStatus = iota
	// FetchNotFound means the resource, or its tag set, does not exist.
	FetchNotFound
	FetchAccessDenied
)

func (s FetchStatus) String() string {
	switch s {
	case FetchFound:
		return "found"
	case FetchNotFound:
		return "not_found"
	case FetchAccessDenied:
		return "access_denied"
	default:
		return "unknown"
	}
}

// FetchOutcome is the routine result of a tag lookup. Only failures that are
// not one of the statuses above are returned as errors.
type FetchOutcome struct {
	Status FetchStatus
	Tags   []policy.Tag
}

func Found(tags []policy.Tag) FetchOutcome {
	return FetchOutcome{Status: FetchFound, Tags: tags}
}

func NotFound() FetchOutcome {
	return FetchOutcome{Status: FetchNotFound}
}

func AccessDenied() FetchOutcome {
	return FetchOutcome{Status: FetchAccessDenied}
}

type Instance struct {
	ID      string
	Type    string
	State   string
	ImageID string
	Tags    []policy.Tag
}

// InstanceFilter narrows a describe call. Empty fields are not sent.
type InstanceFilter struct {
	InstanceID string
	Tags       []policy.Tag
	States     []string
}

type RunInstanceInput struct {
	InstanceType string
	ImageID      string
	Tags         []policy.Tag
}

type Bucket struct {
	Name string
}

type Object struct {
	Key  string
	Size int64
}

type Zone struct {
	ID   string
	Name string
}

// StripZoneID turns "/hostedzone/Z123" into "Z123". Bare ids are returned unchanged.
func StripZoneID(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Record is a single-valued resource record set.
type Record struct {
	Name  string
	Type  string
	Value string
	TTL   int64
}

type RecordSummary struct {
	Name   string
	Type   string
	TTL    int64
	Values []string
}

type ChangeAction string

const (
	ChangeCreate ChangeAction = "CREATE"
	ChangeUpsert ChangeAction = "UPSERT"
	ChangeDelete ChangeAction = "DELETE"
)

//counterfeiter:generate . ComputeGateway
type ComputeGateway interface {
	DescribeInstances(ctx context.Context, filter InstanceFilter) ([]Instance, error)
	RunInstance(ctx context.Context, input RunInstanceInput) (Instance, error)
	StartInstance(ctx context.Context, instanceID string) error
	StopInstance(ctx context.Context, instanceID string) error
}

//counterfeiter:generate . ImageResolver
type ImageResolver interface {
	// ResolveParameter returns the current value stored under a parameter path.
	ResolveParameter(ctx context.Context, path string) (string, error)
}

//counterfeiter:generate . StorageGateway
type StorageGateway interface {
	CreateBucket(ctx context.Context, name, region string) error
	TagBucket(ctx context.Context, name string, tags []policy.Tag) error
	MakeBucketPublic(ctx context.Context, name string) error
	ListBuckets(ctx context.Context) ([]Bucket, error)
	BucketTags(ctx context.Context, name string) (FetchOutcome, error)
	PutObject(ctx context.Context, bucket, key string, body io.Reader) error
	ListObjects(ctx context.Context, bucket string) ([]Object, error)
}

//counterfeiter:generate . DNSGateway
type DNSGateway interface {
	CreateZone(ctx context.Context, name, callerReference string) (Zone, error)
	TagZone(ctx context.Context, zoneID string, tags []policy.Tag) error
	ListZones(ctx context.Context) ([]Zone, error)
	ZoneTags(ctx context.Context, zoneID string) (FetchOutcome, error)
	ListRecords(ctx context.Context, zoneID string) ([]RecordSummary, error)
	ChangeRecord(ctx context.Context, zoneID string, action ChangeAction, record Record) error
}
