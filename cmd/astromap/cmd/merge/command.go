// Package merge provides the merge command, which combines record files
// with the active policy tree.
package merge

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/astromap/internal/appcontext"
	"github.com/agentstation/astromap/internal/cmd/output"
	"github.com/agentstation/astromap/internal/cmd/table"
	"github.com/agentstation/astromap/pkg/constants"
	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/merging"
	"github.com/agentstation/astromap/pkg/record"
)

// Flags holds the merge command flags.
type Flags struct {
	Path string
	Out  string
}

// NewCommand creates the merge command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "merge FILE FILE...",
		GroupID: "policy",
		Short:   "Merge JSON record files with the merge policy",
		Long: `Merge reads two or more JSON records and combines them left to right
with the policy found at --path (the root of the policy tree by default).

Use --policy to merge with a custom policy file.`,
		Example: `  astromap merge output/Resources.json output/Items.json
  astromap merge --path items a.json b.json --out merged.json`,
		Args: cobra.MinimumNArgs(constants.MinMergeRecords),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			merged, err := Files(app, flags.Path, args)
			if err != nil {
				return err
			}

			if flags.Out != "" {
				if err := write(flags.Out, merged); err != nil {
					return err
				}
				app.Logger().Info().Str("file", flags.Out).Msg("Wrote merged record")
				return nil
			}

			return output.Print(cmd.OutOrStdout(), format, merged, func(wide bool) output.Data {
				if flags.Path == "" {
					return table.ItemsToTableData(merged, wide)
				}
				return valueTable(merged)
			})
		},
	}

	cmd.Flags().StringVar(&flags.Path, "path", "", "dotted policy path to merge at, e.g. items")
	cmd.Flags().StringVar(&flags.Out, "out", "", "write the merged record to this file instead of stdout")

	return cmd
}

// Files decodes each file and merges the records at path.
func Files(app appcontext.Interface, path string, files []string) (any, error) {
	merger, err := app.Merger()
	if err != nil {
		return nil, err
	}

	records := make([]any, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file) //nolint:gosec // user-supplied input files
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NewNotFoundError("record file", file)
			}
			return nil, errors.WrapIO("read", file, err)
		}
		rec, err := record.Decode(data)
		if err != nil {
			return nil, errors.WrapParse("json", file, err)
		}
		records = append(records, rec)
	}

	return merger.MergeAt(merging.ParsePath(path), records...)
}

func write(path string, v any) error {
	data, err := record.MarshalIndent(v)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func valueTable(v any) output.Data {
	data, err := record.MarshalIndent(v)
	text := string(data)
	if err != nil {
		text = fmt.Sprint(v)
	}
	return output.Data{
		Headers: []string{"Value"},
		Rows:    [][]string{{text}},
	}
}
