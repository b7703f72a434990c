package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/spf13/cobra"
)

func NewTagsCmd(deps *Deps) *cobra.Command {
	var counts bool

	cmd := &cobra.Command{
		Use:   "tags TYPE",
		Short: "list taxonomy values of a type",
		Example: `  gamedex tags categories
  gamedex tags platforms --counts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := catalog.ParseType(args[0])
			if err != nil {
				return err
			}
			if !t.IsTag() {
				return fmt.Errorf("%s is not a tag type", t)
			}
			tags, err := deps.Store.List(cmd.Context(), t)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range tags {
				if counts {
					n, err := deps.Store.TagReferenceCount(cmd.Context(), t, d.Title())
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%s\t%s\t%d\n", d.ID(), d.Title(), n)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\n", d.ID(), d.Title())
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&counts, "counts", false, "include per-tag game reference counts")
	return cmd
}
