package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/spf13/cobra"
)

func NewListCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list TYPE",
		Short: "list entities of a type",
		Long: `List the entities of one type with identifier and title.

Types: games, collections, categories, platforms, themes, game-modes,
game-engines, player-perspectives, developers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := catalog.ParseType(args[0])
			if err != nil {
				return err
			}
			entities, err := deps.Store.List(cmd.Context(), t)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range entities {
				line := d.ID() + "\t" + d.Title()
				if t == catalog.TypeCollections {
					n, err := deps.Store.GameCount(cmd.Context(), d)
					if err != nil {
						return err
					}
					line += fmt.Sprintf("\t%d games", n)
				}
				fmt.Fprintln(w, line)
			}
			return w.Flush()
		},
	}
	return cmd
}
