package main

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/fileroutes/internal/build"
	"github.com/vango-dev/fileroutes/internal/errors"
)

func genCmd(flags *globalFlags) *cobra.Command {
	var (
		output   string
		manifest string
		stdout   bool
		check    bool
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate the route document",
		Long: `Generate the route document from the views directory.

The document is only rewritten when its content changes.

Examples:
  fileroutes gen
  fileroutes gen -o web/routes.json
  fileroutes gen --manifest routes.yaml --stdout
  fileroutes gen --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stdout && check {
				return errors.New("E147").WithDetail("--stdout and --check cannot be combined")
			}

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			builder := build.New(cfg, build.Options{
				Output:   output,
				Manifest: manifest,
				NoWrite:  stdout || check,
			})
			result, err := builder.Build(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case stdout:
				_, err := out.Write(result.Document)
				return err
			case check:
				return checkDocument(builder.Output(), result.Document)
			}

			rel := relativePath(result.Output)
			if result.RouteCount == 0 {
				warn(out, "No routes found in %s", relativePath(builder.Views()))
			}
			if result.Written {
				success(out, "Generated %s (%d routes) in %s", rel, result.RouteCount, result.Duration.Round(time.Millisecond))
			} else {
				info(out, "%s is up to date (%d routes)", rel, result.RouteCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default from config)")
	cmd.Flags().StringVar(&manifest, "manifest", "", "Read the metadata tree from a JSON or YAML manifest instead of scanning")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print the document instead of writing it")
	cmd.Flags().BoolVar(&check, "check", false, "Fail if the document on disk is out of date")

	return cmd
}

// checkDocument fails unless path already holds document.
func checkDocument(path string, document []byte) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.New("E146").Wrap(err)
	}
	if !bytes.Equal(existing, document) {
		return errors.New("E146").
			WithDetail(relativePath(path) + " does not match the views").
			WithSuggestion("Run 'fileroutes gen' and commit the result")
	}
	return nil
}

// relativePath shortens path relative to the working directory when possible.
func relativePath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || filepath.IsAbs(rel) || len(rel) >= len(path) {
		return path
	}
	return rel
}
