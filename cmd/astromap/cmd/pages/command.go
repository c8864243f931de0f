// Package pages provides the pages command.
package pages

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/astromap/internal/appcontext"
	"github.com/agentstation/astromap/internal/cmd/emoji"
	"github.com/agentstation/astromap/internal/cmd/output"
	"github.com/agentstation/astromap/internal/pages"
)

// Page describes one registered page parser.
type Page struct {
	Order       int    `json:"order" yaml:"order"`
	Name        string `json:"name" yaml:"name"`
	Implemented bool   `json:"implemented" yaml:"implemented"`
}

// NewCommand creates the pages command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "pages",
		GroupID: "core",
		Short:   "List the wiki pages that are scraped",
		Long: `Pages lists the registered page parsers in merge order. Pages whose
parser is not implemented yet are still fetched and cached by scrape.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			list, err := List(app)
			if err != nil {
				return err
			}

			return output.Print(cmd.OutOrStdout(), format, list, func(bool) output.Data {
				return toTableData(list)
			})
		},
	}
}

// List returns the registered parsers in merge order.
func List(app appcontext.Interface) ([]Page, error) {
	merger, err := app.Merger()
	if err != nil {
		return nil, err
	}

	parsers := pages.All(merger)
	list := make([]Page, 0, len(parsers))
	for i, p := range parsers {
		_, placeholder := p.(*pages.Unimplemented)
		list = append(list, Page{
			Order:       i + 1,
			Name:        p.Name(),
			Implemented: !placeholder,
		})
	}
	return list, nil
}

func toTableData(list []Page) output.Data {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		implemented := emoji.Success
		if !p.Implemented {
			implemented = emoji.Optional
		}
		rows = append(rows, []string{strconv.Itoa(p.Order), p.Name, implemented})
	}
	return output.Data{
		Headers: []string{"#", "Page", "Implemented"},
		Rows:    rows,
	}
}
