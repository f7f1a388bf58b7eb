package manager

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"platform-cli/pkg/services/clierr"
	"platform-cli/pkg/services/guard"
	"platform-cli/pkg/services/policy"
	"platform-cli/pkg/services/prompt"
	"platform-cli/pkg/services/provider"
	"strings"
)

type StorageManager struct {
	gateway   provider.StorageGateway
	confirmer prompt.Confirmer
	policy    policy.Policy
	ownership *guard.OwnershipGuard
	region    string
}

func NewStorageManager(gateway provider.StorageGateway, confirmer prompt.Confirmer, p policy.Policy, region string) *StorageManager {
	return &StorageManager{
		gateway:   gateway,
		confirmer: confirmer,
		policy:    p,
		ownership: guard.NewOwnershipGuard(p),
		region:    region,
	}
}

// CreateBucket creates the bucket and then tags it. The two calls are not
// atomic: if tagging fails the bucket is left untagged and this CLI will no
// longer see it.
func (s *StorageManager) CreateBucket(ctx context.Context, name string, public bool) error {
	if strings.TrimSpace(name) == "" {
		return clierr.InvalidArgument("bucket name is required")
	}
	if public {
		ok, err := s.confirmer.Confirm(fmt.Sprintf("Bucket %s will be public. Are you sure?", name))
		if err != nil {
			return clierr.Wrap(clierr.ErrAborted, err, "bucket creation canceled, no answer given")
		}
		if !ok {
			return clierr.New(clierr.ErrAborted, "bucket creation canceled by user")
		}
	}

	if err := s.gateway.CreateBucket(ctx, name, s.region); err != nil {
		return clierr.Remote(err, "failed to create bucket %s", name)
	}
	if err := s.gateway.TagBucket(ctx, name, s.policy.OwnershipTags()); err != nil {
		slog.Warn("Bucket created but not tagged, it is not manageable by this CLI", "prefix", "manager.StorageManager.CreateBucket", "bucket", name, "error", err)
		return clierr.Remote(err, "bucket %s was created but tagging failed", name)
	}
	if public {
		if err := s.gateway.MakeBucketPublic(ctx, name); err != nil {
			return clierr.Remote(err, "bucket %s was created but could not be made public", name)
		}
	}
	return nil
}

// ListBuckets returns the CLI-owned buckets. Buckets without a tag set or
// whose tags cannot be read are skipped; any other failure aborts the listing.
func (s *StorageManager) ListBuckets(ctx context.Context) ([]provider.Bucket, error) {
	buckets, err := s.gateway.ListBuckets(ctx)
	if err != nil {
		return nil, clierr.Remote(err, "could not list buckets")
	}

	var owned []provider.Bucket
	for _, bucket := range buckets {
		outcome, err := s.gateway.BucketTags(ctx, bucket.Name)
		if err != nil {
			return nil, clierr.Remote(err, "could not list buckets")
		}
		if !s.ownership.Owns(outcome) {
			slog.Debug("Skipping bucket", "prefix", "manager.StorageManager.ListBuckets", "bucket", bucket.Name, "status", outcome.Status)
			continue
		}
		owned = append(owned, bucket)
	}
	return owned, nil
}

// Upload copies the local file into an owned bucket and returns the object
// key used. objectName defaults to the file's base name.
func (s *StorageManager) Upload(ctx context.Context, bucket, filePath, objectName string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", clierr.InvalidArgument("file path is required")
	}
	if err := s.checkBucket(ctx, bucket); err != nil {
		return "", err
	}

	key := objectName
	if key == "" {
		key = filepath.Base(filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", clierr.Wrap(clierr.ErrInvalidArgument, err, "could not open %s", filePath)
	}
	defer file.Close()

	slog.Debug("Uploading object", "prefix", "manager.StorageManager.Upload", "bucket", bucket, "key", key)
	if err := s.gateway.PutObject(ctx, bucket, key, file); err != nil {
		return "", clierr.Remote(err, "failed to upload %s to %s", filePath, bucket)
	}
	return key, nil
}

func (s *StorageManager) ListFiles(ctx context.Context, bucket string) ([]provider.Object, error) {
	if err := s.checkBucket(ctx, bucket); err != nil {
		return nil, err
	}
	objects, err := s.gateway.ListObjects(ctx, bucket)
	if err != nil {
		return nil, clierr.Remote(err, "could not list files in %s", bucket)
	}
	return objects, nil
}

func (s *StorageManager) checkBucket(ctx context.Context, bucket string) error {
	if strings.TrimSpace(bucket) == "" {
		return clierr.InvalidArgument("bucket name is required")
	}
	return s.ownership.CheckExisting(ctx, "bucket "+bucket, func(ctx context.Context) (provider.FetchOutcome, error) {
		return s.gateway.BucketTags(ctx, bucket)
	})
}
