package cli

import (
	"fmt"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/spf13/cobra"
)

func NewInfoCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info TYPE ID",
		Short: "print an entity's descriptor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := catalog.ParseType(args[0])
			if err != nil {
				return err
			}
			d, err := deps.Store.Get(cmd.Context(), t, args[1])
			if err != nil {
				return err
			}
			data, err := d.Bytes()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	return cmd
}
