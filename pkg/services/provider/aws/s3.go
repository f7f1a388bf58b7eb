package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"platform-cli/config"
	"platform-cli/pkg/services/policy"
	"platform-cli/pkg/services/provider"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
)

// S3API is the subset of the S3 client the storage gateway calls.
type S3API interface {
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutBucketTagging(ctx context.Context, params *s3.PutBucketTaggingInput, optFns ...func(*s3.Options)) (*s3.PutBucketTaggingOutput, error)
	GetBucketTagging(ctx context.Context, params *s3.GetBucketTaggingInput, optFns ...func(*s3.Options)) (*s3.GetBucketTaggingOutput, error)
	DeletePublicAccessBlock(ctx context.Context, params *s3.DeletePublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.DeletePublicAccessBlockOutput, error)
	PutBucketPolicy(ctx context.Context, params *s3.PutBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error)
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Gateway implements provider.StorageGateway.
type S3Gateway struct {
	client S3API
}

func NewS3Gateway(client S3API) *S3Gateway {
	return &S3Gateway{client: client}
}

// CreateBucket omits the location constraint in us-east-1, where S3 rejects it.
func (g *S3Gateway) CreateBucket(ctx context.Context, name, region string) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(name),
	}
	if region != "" && region != config.DefaultRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}
	_, err := g.client.CreateBucket(ctx, input)
	return errors.Wrap(err, "Failed to create s3 bucket")
}

func (g *S3Gateway) TagBucket(ctx context.Context, name string, tags []policy.Tag) error {
	tagSet := make([]types.Tag, 0, len(tags))
	for _, tag := range tags {
		tagSet = append(tagSet, types.Tag{Key: aws.String(tag.Key), Value: aws.String(tag.Value)})
	}
	_, err := g.client.PutBucketTagging(ctx, &s3.PutBucketTaggingInput{
		Bucket:  aws.String(name),
		Tagging: &types.Tagging{TagSet: tagSet},
	})
	return errors.Wrap(err, "Failed to tag s3 bucket")
}

type bucketPolicy struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

type policyStatement struct {
	Sid       string `json:"Sid"`
	Effect    string `json:"Effect"`
	Principal string `json:"Principal"`
	Action    string `json:"Action"`
	Resource  string `json:"Resource"`
}

// MakeBucketPublic lifts the bucket's public access block and grants
// anonymous read on its objects.
func (g *S3Gateway) MakeBucketPublic(ctx context.Context, name string) error {
	if _, err := g.client.DeletePublicAccessBlock(ctx, &s3.DeletePublicAccessBlockInput{
		Bucket: aws.String(name),
	}); err != nil {
		return errors.Wrap(err, "Failed to remove public access block")
	}

	document, err := json.Marshal(bucketPolicy{
		Version: "2012-10-17",
		Statement: []policyStatement{
			{
				Sid:       "PublicRead",
				Effect:    "Allow",
				Principal: "*",
				Action:    "s3:GetObject",
				Resource:  fmt.Sprintf("arn:aws:s3:::%s/*", name),
			},
		},
	})
	if err != nil {
		return errors.Wrap(err, "Failed to marshal bucket policy")
	}

	_, err = g.client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(name),
		Policy: aws.String(string(document)),
	})
	return errors.Wrap(err, "Failed to put public bucket policy")
}

func (g *S3Gateway) ListBuckets(ctx context.Context) ([]provider.Bucket, error) {
	output, err := g.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list s3 buckets")
	}
	buckets := make([]provider.Bucket, 0, len(output.Buckets))
	for _, bucket := range output.Buckets {
		buckets = append(buckets, provider.Bucket{Name: aws.ToString(bucket.Name)})
	}
	return buckets, nil
}

// BucketTags reports a bucket without a tag set as NotFound. A bucket that
// no longer exists is an error.
func (g *S3Gateway) BucketTags(ctx context.Context, name string) (provider.FetchOutcome, error) {
	output, err := g.client.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		return classifyTagError(err, "bucket "+name, "NoSuchTagSet")
	}
	tags := make([]policy.Tag, 0, len(output.TagSet))
	for _, tag := range output.TagSet {
		tags = append(tags, policy.Tag{Key: aws.ToString(tag.Key), Value: aws.ToString(tag.Value)})
	}
	return provider.Found(tags), nil
}

func (g *S3Gateway) PutObject(ctx context.Context, bucket, key string, body io.Reader) error {
	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	return errors.Wrap(err, "Failed to upload object")
}

// ListObjects returns the first page of keys only.
func (g *S3Gateway) ListObjects(ctx context.Context, bucket string) ([]provider.Object, error) {
	output, err := g.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list objects")
	}
	objects := make([]provider.Object, 0, len(output.Contents))
	for _, object := range output.Contents {
		objects = append(objects, provider.Object{
			Key:  aws.ToString(object.Key),
			Size: aws.ToInt64(object.Size),
		})
	}
	return objects, nil
}
