package main

import (
	"io"
	"strconv"

	"github.com/ddddddO/gtree"
	"github.com/spf13/cobra"

	"github.com/vango-dev/fileroutes/internal/build"
	"github.com/vango-dev/fileroutes/pkg/routeconfig"
)

func treeCmd(flags *globalFlags) *cobra.Command {
	var manifest string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the route tree",
		Long: `Print the normalized route tree without writing the document.

Index routes are shown as (index), titles in quotes and directories
without routable content as [].

Examples:
  fileroutes tree
  fileroutes tree --manifest routes.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			builder := build.New(cfg, build.Options{Manifest: manifest, NoWrite: true})
			result, err := builder.Build(cmd.Context())
			if err != nil {
				return err
			}

			label := relativePath(builder.Views())
			switch {
			case manifest != "":
				label = manifest
			case cfg.Paths.Manifest != "":
				label = relativePath(cfg.ManifestPath())
			}
			return renderTree(cmd.OutOrStdout(), label, result.Routes)
		},
	}

	cmd.Flags().StringVar(&manifest, "manifest", "", "Read the metadata tree from a JSON or YAML manifest instead of scanning")

	return cmd
}

// renderTree writes routes as a box-drawing tree below label.
func renderTree(w io.Writer, label string, routes []*routeconfig.RouteConfig) error {
	if label == "" {
		label = "."
	}
	root := gtree.NewRoot(label)
	addRoutes(root, routes)
	return gtree.OutputFromRoot(w, root)
}

func addRoutes(parent *gtree.Node, routes []*routeconfig.RouteConfig) {
	for _, rc := range routes {
		node := parent.Add(routeLabel(rc))
		if children := rc.Children(); children.Kind() == routeconfig.PopulatedSubtree {
			addRoutes(node, children.Routes())
		}
	}
}

func routeLabel(rc *routeconfig.RouteConfig) string {
	label := rc.Route()
	if label == "" {
		label = "(index)"
	}
	if title, ok := rc.Title(); ok {
		label += " " + strconv.Quote(title)
	}
	if rc.Children().Kind() == routeconfig.EmptySubtree {
		label += " []"
	}
	return label
}
