package cli

import (
	"fmt"
	"strings"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/spf13/cobra"
)

func NewCreateCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "create a collection or taxonomy value",
	}
	cmd.AddCommand(newCreateCollectionCmd(deps), newCreateTagCmd(deps))
	return cmd
}

func newCreateCollectionCmd(deps *Deps) *cobra.Command {
	var summary string

	cmd := &cobra.Command{
		Use:   "collection ID TITLE",
		Short: "create an empty collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[1])
			if title == "" {
				return fmt.Errorf("collection title must not be empty")
			}
			d := catalog.NewDescriptor()
			d.SetID(args[0])
			d.SetTitle(title)
			if summary != "" {
				d.SetSummary(summary)
			}
			d.SetGameIDs(nil)

			created, err := deps.Store.Create(cmd.Context(), catalog.TypeCollections, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created collection %s\n", created.ID())
			return nil
		},
	}
	cmd.Flags().StringVar(&summary, "summary", "", "collection summary")
	return cmd
}

func newCreateTagCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag TYPE TITLE",
		Short: "create a taxonomy value",
		Long: `Create a controlled-vocabulary tag. The identifier is derived from the
normalized title, so titles differing only by case collide.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := catalog.ParseType(args[0])
			if err != nil {
				return err
			}
			d, err := deps.Store.CreateTag(cmd.Context(), t, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s)\n", t, d.Title(), d.ID())
			return nil
		},
	}
	return cmd
}
