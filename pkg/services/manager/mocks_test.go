package manager_test

import (
	"context"
	"io"
	"platform-cli/pkg/services/policy"
	"platform-cli/pkg/services/provider"

	"github.com/stretchr/testify/mock"
)

var (
	ownedTags = []policy.Tag{
		{Key: "CreatedBy", Value: "platform-cli"},
		{Key: "Owner", Value: "duvie"},
	}
	foreignTags = []policy.Tag{
		{Key: "CreatedBy", Value: "terraform"},
		{Key: "Owner", Value: "duvie"},
	}
)

// MockComputeGateway is a mock implementation of provider.ComputeGateway
type MockComputeGateway struct {
	mock.Mock
}

func (m *MockComputeGateway) DescribeInstances(ctx context.Context, filter provider.InstanceFilter) ([]provider.Instance, error) {
	args := m.Called(ctx, filter)
	instances, _ := args.Get(0).([]provider.Instance)
	return instances, args.Error(1)
}

func (m *MockComputeGateway) RunInstance(ctx context.Context, input provider.RunInstanceInput) (provider.Instance, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(provider.Instance), args.Error(1)
}

func (m *MockComputeGateway) StartInstance(ctx context.Context, instanceID string) error {
	return m.Called(ctx, instanceID).Error(0)
}

func (m *MockComputeGateway) StopInstance(ctx context.Context, instanceID string) error {
	return m.Called(ctx, instanceID).Error(0)
}

type MockImageResolver struct {
	mock.Mock
}

func (m *MockImageResolver) ResolveParameter(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

type MockStorageGateway struct {
	mock.Mock
}

func (m *MockStorageGateway) CreateBucket(ctx context.Context, name, region string) error {
	return m.Called(ctx, name, region).Error(0)
}

func (m *MockStorageGateway) TagBucket(ctx context.Context, name string, tags []policy.Tag) error {
	return m.Called(ctx, name, tags).Error(0)
}

func (m *MockStorageGateway) MakeBucketPublic(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockStorageGateway) ListBuckets(ctx context.Context) ([]provider.Bucket, error) {
	args := m.Called(ctx)
	buckets, _ := args.Get(0).([]provider.Bucket)
	return buckets, args.Error(1)
}

func (m *MockStorageGateway) BucketTags(ctx context.Context, name string) (provider.FetchOutcome, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(provider.FetchOutcome), args.Error(1)
}

func (m *MockStorageGateway) PutObject(ctx context.Context, bucket, key string, body io.Reader) error {
	return m.Called(ctx, bucket, key, body).Error(0)
}

func (m *MockStorageGateway) ListObjects(ctx context.Context, bucket string) ([]provider.Object, error) {
	args := m.Called(ctx, bucket)
	objects, _ := args.Get(0).([]provider.Object)
	return objects, args.Error(1)
}

type MockDNSGateway struct {
	mock.Mock
}

func (m *MockDNSGateway) CreateZone(ctx context.Context, name, callerReference string) (provider.Zone, error) {
	args := m.Called(ctx, name, callerReference)
	return args.Get(0).(provider.Zone), args.Error(1)
}

func (m *MockDNSGateway) TagZone(ctx context.Context, zoneID string, tags []policy.Tag) error {
	return m.Called(ctx, zoneID, tags).Error(0)
}

func (m *MockDNSGateway) ListZones(ctx context.Context) ([]provider.Zone, error) {
	args := m.Called(ctx)
	zones, _ := args.Get(0).([]provider.Zone)
	return zones, args.Error(1)
}

func (m *MockDNSGateway) ZoneTags(ctx context.Context, zoneID string) (provider.FetchOutcome, error) {
	args := m.Called(ctx, zoneID)
	return args.Get(0).(provider.FetchOutcome), args.Error(1)
}

func (m *MockDNSGateway) ListRecords(ctx context.Context, zoneID string) ([]provider.RecordSummary, error) {
	args := m.Called(ctx, zoneID)
	records, _ := args.Get(0).([]provider.RecordSummary)
	return records, args.Error(1)
}

func (m *MockDNSGateway) ChangeRecord(ctx context.Context, zoneID string, action provider.ChangeAction, record provider.Record) error {
	return m.Called(ctx, zoneID, action, record).Error(0)
}

type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(message string) (bool, error) {
	args := m.Called(message)
	return args.Bool(0), args.Error(1)
}
