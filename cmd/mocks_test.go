package cmd

import (
	"bytes"
	"context"
	"io"
	"iter"
	"log/slog"
	"path/filepath"
	"platform-cli/config"
	"platform-cli/pkg/services/prompt"
	"platform-cli/pkg/services/provider"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
)

type MockCompute struct {
	mock.Mock
}

func (m *MockCompute) Create(ctx context.Context, instanceType, osName string) (provider.Instance, error) {
	args := m.Called(ctx, instanceType, osName)
	return args.Get(0).(provider.Instance), args.Error(1)
}

func (m *MockCompute) Start(ctx context.Context, instanceID string) error {
	return m.Called(ctx, instanceID).Error(0)
}

func (m *MockCompute) Stop(ctx context.Context, instanceID string) error {
	return m.Called(ctx, instanceID).Error(0)
}

func (m *MockCompute) List(ctx context.Context) iter.Seq2[provider.Instance, error] {
	return m.Called(ctx).Get(0).(iter.Seq2[provider.Instance, error])
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateBucket(ctx context.Context, name string, public bool) error {
	return m.Called(ctx, name, public).Error(0)
}

func (m *MockStorage) ListBuckets(ctx context.Context) ([]provider.Bucket, error) {
	args := m.Called(ctx)
	buckets, _ := args.Get(0).([]provider.Bucket)
	return buckets, args.Error(1)
}

func (m *MockStorage) Upload(ctx context.Context, bucket, filePath, objectName string) (string, error) {
	args := m.Called(ctx, bucket, filePath, objectName)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) ListFiles(ctx context.Context, bucket string) ([]provider.Object, error) {
	args := m.Called(ctx, bucket)
	objects, _ := args.Get(0).([]provider.Object)
	return objects, args.Error(1)
}

type MockDNS struct {
	mock.Mock
}

func (m *MockDNS) CreateZone(ctx context.Context, name string) (provider.Zone, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(provider.Zone), args.Error(1)
}

func (m *MockDNS) ListZones(ctx context.Context) ([]provider.Zone, error) {
	args := m.Called(ctx)
	zones, _ := args.Get(0).([]provider.Zone)
	return zones, args.Error(1)
}

func (m *MockDNS) ListRecords(ctx context.Context, zoneID string) ([]provider.RecordSummary, error) {
	args := m.Called(ctx, zoneID)
	records, _ := args.Get(0).([]provider.RecordSummary)
	return records, args.Error(1)
}

func (m *MockDNS) CreateRecord(ctx context.Context, zoneID string, record provider.Record) error {
	return m.Called(ctx, zoneID, record).Error(0)
}

func (m *MockDNS) UpdateRecord(ctx context.Context, zoneID string, record provider.Record) error {
	return m.Called(ctx, zoneID, record).Error(0)
}

func (m *MockDNS) DeleteRecord(ctx context.Context, zoneID, name, recordType, value string) error {
	return m.Called(ctx, zoneID, name, recordType, value).Error(0)
}

type MockEditor struct {
	mock.Mock
}

func (m *MockEditor) WriteConfigField(field, value string) error {
	return m.Called(field, value).Error(0)
}

func (m *MockEditor) DeleteConfigField(field string) error {
	return m.Called(field).Error(0)
}

func (m *MockEditor) ListConfigFields() ([]string, error) {
	args := m.Called()
	lines, _ := args.Get(0).([]string)
	return lines, args.Error(1)
}

// harness runs a fresh command tree against mocked services.
type harness struct {
	t       *testing.T
	compute *MockCompute
	storage *MockStorage
	dns     *MockDNS
	editor  *MockEditor
	stdin   string
	// connectErr, when set, is returned instead of the services.
	connectErr error
	// seen is the config the services were built with.
	seen config.Config
}

func newHarness(t *testing.T) *harness {
	viper.Reset()
	previous := slog.Default()
	t.Cleanup(func() {
		viper.Reset()
		slog.SetDefault(previous)
	})
	for _, key := range config.Keys {
		t.Setenv(EnvKey(key), "")
	}
	return &harness{
		t:       t,
		compute: &MockCompute{},
		storage: &MockStorage{},
		dns:     &MockDNS{},
		editor:  &MockEditor{},
	}
}

func (h *harness) run(args ...string) string {
	h.t.Helper()
	var out bytes.Buffer
	a := &app{
		cfg: &config.Config{Log: io.Discard},
		in:  strings.NewReader(h.stdin),
		out: &out,
		services: func(_ context.Context, cfg *config.Config, _ prompt.Confirmer) (*services, error) {
			h.seen = *cfg
			if h.connectErr != nil {
				return nil, h.connectErr
			}
			return &services{compute: h.compute, storage: h.storage, dns: h.dns}, nil
		},
		profile: func(string) configEditor { return h.editor },
	}
	root := newRootCmd(a)
	root.SetErr(io.Discard)
	configFile := filepath.Join(h.t.TempDir(), "config.toml")
	root.SetArgs(append([]string{"--config", configFile}, args...))
	if err := root.ExecuteContext(context.Background()); err != nil {
		h.t.Fatalf("command %v failed: %v", args, err)
	}
	return out.String()
}

func instances(items ...provider.Instance) iter.Seq2[provider.Instance, error] {
	return func(yield func(provider.Instance, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}
