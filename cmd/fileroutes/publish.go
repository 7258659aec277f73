package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/fileroutes/internal/build"
	"github.com/vango-dev/fileroutes/internal/publish"
)

func publishCmd(flags *globalFlags) *cobra.Command {
	var (
		key    string
		bucket string
		write  bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Generate the route document and upload it to S3",
		Long: `Generate the route document and upload it to an S3 bucket or an
S3-compatible store.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN, which may be set in the .env file.

Examples:
  fileroutes publish
  fileroutes publish --bucket app-config --key web/routes.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if key != "" {
				cfg.Publish.Key = key
			}
			if bucket != "" {
				cfg.Publish.Bucket = bucket
			}

			result, err := build.New(cfg, build.Options{NoWrite: !write}).Build(cmd.Context())
			if err != nil {
				return err
			}

			client, err := publish.NewS3Client(cfg.Publish, publish.EnvCredentials())
			if err != nil {
				return err
			}
			receipt, err := publish.NewS3Publisher(client, cfg.Publish.Bucket).Publish(cmd.Context(), cfg.Publish.Key, result.Document)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			success(out, "Published s3://%s/%s (%d routes, %d bytes)", receipt.Bucket, receipt.Key, result.RouteCount, receipt.Size)
			info(out, "sha256 %s", receipt.Checksum)
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "Object key (default from config)")
	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Bucket (default from config)")
	cmd.Flags().BoolVar(&write, "write", false, "Also write the document locally")

	return cmd
}
