package cmd

import (
	"fmt"
	"platform-cli/pkg/services/reporter"

	"github.com/spf13/cobra"
)

type s3Cmd struct {
	app        *app
	bucketName string
	public     bool
	filePath   string
	objectName string
}

func newS3Cmds(a *app) []*cobra.Command {
	sc := &s3Cmd{app: a}

	create := &cobra.Command{
		Use:   "create-s3",
		Short: "Create an S3 bucket",
		Args:  cobra.NoArgs,
		RunE:  sc.runCreate,
	}
	create.Flags().StringVar(&sc.bucketName, "bucket_name", "", "Name of S3 bucket")
	create.Flags().BoolVar(&sc.public, "public", false, "Make the bucket publicly readable (asks for confirmation)")

	list := &cobra.Command{
		Use:   "list-s3",
		Short: "List CLI-created S3 buckets",
		Args:  cobra.NoArgs,
		RunE:  sc.runList,
	}

	upload := &cobra.Command{
		Use:   "upload-s3",
		Short: "Upload a file to a CLI-created S3 bucket",
		Args:  cobra.NoArgs,
		RunE:  sc.runUpload,
	}
	upload.Flags().StringVar(&sc.bucketName, "bucket_name", "", "Name of S3 bucket")
	upload.Flags().StringVar(&sc.filePath, "file", "", "Local file to upload")
	upload.Flags().StringVar(&sc.objectName, "object_name", "", "Object key (default: the file's base name)")

	files := &cobra.Command{
		Use:   "list-s3-files",
		Short: "List the objects in a CLI-created S3 bucket",
		Args:  cobra.NoArgs,
		RunE:  sc.runListFiles,
	}
	files.Flags().StringVar(&sc.bucketName, "bucket_name", "", "Name of S3 bucket")

	return []*cobra.Command{create, list, upload, files}
}

func (s *s3Cmd) runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := s.app.require(&s.bucketName, "Bucket name"); err != nil {
		return s.app.fail(ctx, err)
	}
	svc, err := s.app.connect(ctx)
	if err != nil {
		return s.app.fail(ctx, err)
	}
	if err := svc.storage.CreateBucket(ctx, s.bucketName, s.public); err != nil {
		return s.app.fail(ctx, err)
	}
	visibility := "private"
	if s.public {
		visibility = "public"
	}
	return s.app.report(ctx, reporter.Success("created bucket %s (%s)", s.bucketName, visibility))
}

func (s *s3Cmd) runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := s.app.connect(ctx)
	if err != nil {
		return s.app.fail(ctx, err)
	}
	buckets, err := svc.storage.ListBuckets(ctx)
	if err != nil {
		return s.app.fail(ctx, err)
	}
	rows := make([][]string, 0, len(buckets))
	for _, bucket := range buckets {
		rows = append(rows, []string{bucket.Name})
	}
	return s.app.report(ctx, reporter.Listing([]string{"bucket"}, rows, "No buckets created by this CLI."))
}

func (s *s3Cmd) runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := s.app.require(&s.bucketName, "Bucket name"); err != nil {
		return s.app.fail(ctx, err)
	}
	if err := s.app.require(&s.filePath, "File"); err != nil {
		return s.app.fail(ctx, err)
	}
	svc, err := s.app.connect(ctx)
	if err != nil {
		return s.app.fail(ctx, err)
	}
	key, err := svc.storage.Upload(ctx, s.bucketName, s.filePath, s.objectName)
	if err != nil {
		return s.app.fail(ctx, err)
	}
	return s.app.report(ctx, reporter.Success("uploaded %s to s3://%s/%s", s.filePath, s.bucketName, key))
}

func (s *s3Cmd) runListFiles(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := s.app.require(&s.bucketName, "Bucket name"); err != nil {
		return s.app.fail(ctx, err)
	}
	svc, err := s.app.connect(ctx)
	if err != nil {
		return s.app.fail(ctx, err)
	}
	objects, err := svc.storage.ListFiles(ctx, s.bucketName)
	if err != nil {
		return s.app.fail(ctx, err)
	}
	rows := make([][]string, 0, len(objects))
	for _, object := range objects {
		rows = append(rows, []string{object.Key, fmt.Sprint(object.Size)})
	}
	return s.app.report(ctx, reporter.Listing([]string{"key", "size"}, rows, fmt.Sprintf("Bucket %s is empty.", s.bucketName)))
}
