package cli

import (
	"context"

	"github.com/Adda-Baaj/pride-client/pkg/pride"
	"github.com/spf13/cobra"
)

func newProjectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "project <accession>",
		Short:   "Show a project by accession (e.g. PRD000001)",
		Args:    cobra.ExactArgs(1),
		Example: "  pride project PRD000001",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, opts, func(c *pride.Client) error {
				res, err := c.ProjectAccession(contextOf(cmd), args[0])
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), opts.output, res)
			})
		},
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
