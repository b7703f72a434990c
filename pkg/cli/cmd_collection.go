package cli

import (
	"fmt"
	"strings"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/spf13/cobra"
)

func NewCollectionCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collection",
		Short: "manage collection membership",
	}
	cmd.AddCommand(newCollectionSetCmd(deps), newCollectionCountCmd(deps))
	return cmd
}

func newCollectionSetCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "set ID GAME_ID...",
		Short: "replace a collection's membership",
		Long: `Replace a collection's game list. Duplicates are dropped, identifiers
that resolve to no game are dropped, and the result is ordered by release
date ascending.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := deps.Store
			members, err := s.SetMembership(cmd.Context(), args[0], args[1:],
				s.Cache.Updater(catalog.TypeCollections))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "collection %s: [%s]\n",
				args[0], strings.Join(members, ", "))
			return nil
		},
	}
}

func newCollectionCountCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "count ID",
		Short: "print a collection's live game count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := deps.Store.CollectionGameCount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
