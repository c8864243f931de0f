// Package policy provides the policy command.
package policy

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/astromap/internal/appcontext"
	"github.com/agentstation/astromap/internal/cmd/output"
	"github.com/agentstation/astromap/internal/cmd/table"
	"github.com/agentstation/astromap/pkg/merging"
)

// NewCommand creates the policy command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var resolve string

	cmd := &cobra.Command{
		Use:     "policy",
		GroupID: "policy",
		Short:   "Show the merge policy tree",
		Long: `Policy prints the active merge policy tree: the default tree, or the one
loaded from --policy. The yaml output is a valid policy file.

With --resolve only the subtree at the given dotted path is shown, using
the same lookup rules as merging.`,
		Example: `  astromap policy -o yaml > policy.yaml
  astromap policy --resolve items.Copper.tags`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			spec, err := Show(app, resolve)
			if err != nil {
				return err
			}

			return output.Print(cmd.OutOrStdout(), format, spec, func(bool) output.Data {
				return table.PolicyToTableData(spec)
			})
		},
	}

	cmd.Flags().StringVar(&resolve, "resolve", "", "dotted path to resolve, e.g. items.Copper.tags")

	return cmd
}

// Show returns the policy tree, or the subtree at the dotted path when it
// is not empty.
func Show(app appcontext.Interface, path string) (*merging.Spec, error) {
	if path == "" {
		return app.PolicySpec()
	}

	merger, err := app.Merger()
	if err != nil {
		return nil, err
	}
	policy, err := merger.Resolve(merging.ParsePath(path))
	if err != nil {
		return nil, err
	}
	return merging.Describe(policy), nil
}
