package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/spf13/cobra"
)

func NewAssetCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "manage entity image assets and game executables",
	}
	cmd.AddCommand(newAssetSaveCmd(deps), newAssetRmCmd(deps), newAssetExecCmd(deps))
	return cmd
}

func newAssetSaveCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "save TYPE ID KIND FILE",
		Short: "save a cover or background image",
		Long: `Store an image for an entity. KIND is cover or background; the file
extension decides the stored name (cover.png, background.jpg, ...). An
existing asset of the same kind is replaced.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := catalog.ParseType(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[3])
			if err != nil {
				return err
			}
			ext := strings.TrimPrefix(filepath.Ext(args[3]), ".")
			name, err := deps.Store.SaveAsset(cmd.Context(), t, args[1],
				catalog.AssetKind(args[2]), ext, data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s/%s/%s\n", t, args[1], name)
			return nil
		},
	}
}

func newAssetRmCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "rm TYPE ID KIND",
		Short: "delete a cover or background image",
		Long: `Delete an entity's image asset if present. The entity directory itself
is removed once it holds no files at all.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := catalog.ParseType(args[0])
			if err != nil {
				return err
			}
			if err := deps.Store.DeleteAsset(cmd.Context(), t, args[1], catalog.AssetKind(args[2])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s asset of %s/%s\n", args[2], t, args[1])
			return nil
		},
	}
}

func newAssetExecCmd(deps *Deps) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "exec GAME_ID FILE",
		Short: "save an executable script for a game",
		Long: `Store an executable for a game. The stored filename is a sanitized form
of the label; the label itself is recorded on the game unchanged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			s := deps.Store
			recorded, err := s.SaveExecutable(cmd.Context(), args[0], label, data,
				s.Cache.Updater(catalog.TypeGames))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved executable %q for game %s\n", recorded, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "label recorded on the game")
	return cmd
}
