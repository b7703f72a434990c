package cli

import (
	"fmt"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/spf13/cobra"
)

func NewRmCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "delete entities",
	}
	cmd.AddCommand(newRmGameCmd(deps), newRmCollectionCmd(deps), newRmTagCmd(deps))
	return cmd
}

func newRmGameCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "game ID",
		Short: "delete a game and every reference to it",
		Long: `Delete a game. The identifier is removed from all collections and
recommended sections, and taxonomy values left unreferenced are cleaned up.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.Store.DeleteGameCascade(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted game %s\n", args[0])
			return nil
		},
	}
}

func newRmCollectionCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "collection ID",
		Short: "delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := deps.Store
			if err := s.Delete(cmd.Context(), catalog.TypeCollections, args[0], s.Cache.Updater(catalog.TypeCollections)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted collection %s\n", args[0])
			return nil
		},
	}
}

func newRmTagCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "tag TYPE TITLE",
		Short: "delete an unreferenced taxonomy value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := catalog.ParseType(args[0])
			if err != nil {
				return err
			}
			s := deps.Store
			if err := s.DeleteTag(cmd.Context(), t, args[1], s.Cache.Updater(t)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", t, args[1])
			return nil
		},
	}
}
