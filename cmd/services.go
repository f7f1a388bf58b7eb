package cmd

import (
	"context"
	"iter"
	"log/slog"
	"platform-cli/config"
	"platform-cli/pkg/services/clierr"
	"platform-cli/pkg/services/manager"
	"platform-cli/pkg/services/prompt"
	"platform-cli/pkg/services/provider"
	"platform-cli/pkg/services/provider/aws"
)

type computeService interface {
	Create(ctx context.Context, instanceType, osName string) (provider.Instance, error)
	Start(ctx context.Context, instanceID string) error
	Stop(ctx context.Context, instanceID string) error
	List(ctx context.Context) iter.Seq2[provider.Instance, error]
}

type storageService interface {
	CreateBucket(ctx context.Context, name string, public bool) error
	ListBuckets(ctx context.Context) ([]provider.Bucket, error)
	Upload(ctx context.Context, bucket, filePath, objectName string) (string, error)
	ListFiles(ctx context.Context, bucket string) ([]provider.Object, error)
}

type dnsService interface {
	CreateZone(ctx context.Context, name string) (provider.Zone, error)
	ListZones(ctx context.Context) ([]provider.Zone, error)
	ListRecords(ctx context.Context, zoneID string) ([]provider.RecordSummary, error)
	CreateRecord(ctx context.Context, zoneID string, record provider.Record) error
	UpdateRecord(ctx context.Context, zoneID string, record provider.Record) error
	DeleteRecord(ctx context.Context, zoneID, name, recordType, value string) error
}

// services are the managers one invocation works with.
type services struct {
	compute computeService
	storage storageService
	dns     dnsService
}

type serviceFactory func(ctx context.Context, cfg *config.Config, confirmer prompt.Confirmer) (*services, error)

// awsServices builds the managers on a fresh AWS session. Nothing is sent to
// AWS until the first operation runs.
func awsServices(ctx context.Context, cfg *config.Config, confirmer prompt.Confirmer) (*services, error) {
	p, err := cfg.Policy()
	if err != nil {
		return nil, clierr.Wrap(clierr.ErrInvalidArgument, err, "invalid policy file %s", cfg.PolicyFile)
	}

	awsCfg := cfg.AWS()
	if cfg.Endpoint == "" {
		found, err := aws.CheckAWSConfig("", cfg.Profile)
		if err != nil {
			return nil, err
		}
		awsCfg.CredentialPath = found.CredentialPath
		awsCfg.ConfigPath = found.ConfigPath
		awsCfg.ProfileName = found.ProfileName
	}

	session, err := aws.NewSession(ctx, &awsCfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("AWS session ready", "prefix", "cmd.awsServices", "profile", awsCfg.ProfileName, "region", session.Region(), "endpoint", cfg.Endpoint)

	return &services{
		compute: manager.NewComputeManager(session.Compute(), session.Images(), p),
		storage: manager.NewStorageManager(session.Storage(), confirmer, p, session.Region()),
		dns:     manager.NewDNSManager(session.DNS(), p),
	}, nil
}
