package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/fileroutes/internal/errors"
	"github.com/vango-dev/fileroutes/pkg/scanner"
)

func scanCmd(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Print the scanned metadata tree as a manifest",
		Long: `Scan the views directory and print the metadata tree in the
manifest format read by 'gen --manifest'.

Examples:
  fileroutes scan > routes.yaml
  fileroutes scan --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := scanner.Format(format)
			if f != scanner.FormatJSON && f != scanner.FormatYAML {
				return errors.New("E147").WithDetail("--format must be json or yaml, got " + format)
			}

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			root, err := scanner.NewScanner(cfg.ViewsPath()).Scan()
			if err != nil {
				return errors.New("E174").Wrap(err).WithLocationFromError(err)
			}
			return scanner.EncodeManifest(cmd.OutOrStdout(), root, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(scanner.FormatYAML), "Manifest format (json or yaml)")

	return cmd
}
