package cli

import (
	"fmt"
	"os"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/gamedex/gamedex/pkg/internal"
	"github.com/gamedex/gamedex/pkg/log"
	"github.com/jlrickert/cli-toolkit/toolkit"
	"github.com/spf13/cobra"
)

// Deps holds configuration and cached resources shared by all subcommands.
// The PersistentPreRunE resolves the catalog root and builds the Store once;
// tests may pre-populate Store and skip resolution entirely.
type Deps struct {
	Runtime *toolkit.Runtime

	ConfigPath string
	RootPath   string
	LogFile    string
	LogLevel   string
	LogJSON    bool

	Store *catalog.Store
}

// NewRootCmd builds the root cobra command, wires persistent flags, and
// installs the subcommands.
func NewRootCmd(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = &Deps{}
	}

	cmd := &cobra.Command{
		Use:           "gamedex",
		Short:         "manage a filesystem game library catalog",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if deps.LogFile != "" || deps.LogJSON || deps.LogLevel != "" {
				out := os.Stderr
				if deps.LogFile != "" {
					f, err := os.OpenFile(deps.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
					if err != nil {
						return err
					}
					out = f
				}
				lg, _, err := log.NewLogger(log.LoggerConfig{
					Out:     out,
					Level:   parseLevel(deps.LogLevel),
					JSON:    deps.LogJSON,
					Version: Version,
				})
				if err != nil {
					return err
				}
				ctx = log.ContextWithLogger(ctx, lg)
			} else {
				ctx = log.ContextWithLogger(ctx, log.NewNopLogger())
			}
			cmd.SetContext(ctx)

			if deps.Store != nil {
				return nil
			}
			root, err := resolveRoot(deps)
			if err != nil {
				return err
			}
			deps.Store = catalog.NewStore(root)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&deps.LogFile, "log-file", "", "write logs to file (default stderr)")
	cmd.PersistentFlags().StringVar(&deps.LogLevel, "log-level", "", "minimum log level")
	cmd.PersistentFlags().BoolVar(&deps.LogJSON, "log-json", false, "output logs as JSON")
	cmd.PersistentFlags().StringVarP(&deps.ConfigPath, "config", "c", "", "path to config file")
	cmd.PersistentFlags().StringVarP(&deps.RootPath, "root", "r", "", "catalog root directory")

	cmd.AddCommand(
		NewListCmd(deps),
		NewInfoCmd(deps),
		NewCreateCmd(deps),
		NewRmCmd(deps),
		NewTagsCmd(deps),
		NewCollectionCmd(deps),
		NewAssetCmd(deps),
		NewImportCmd(deps),
	)
	return cmd
}

// resolveRoot picks the catalog root: --root flag, then the config file,
// then the per-user data directory.
func resolveRoot(deps *Deps) (string, error) {
	root := deps.RootPath
	if root == "" {
		cfgPath := deps.ConfigPath
		if cfgPath == "" {
			p, err := catalog.DefaultConfigPath()
			if err != nil {
				return "", err
			}
			cfgPath = p
		}
		cfg, err := catalog.ReadConfig(cfgPath)
		if err != nil {
			return "", err
		}
		root = cfg.Root
	}
	if root == "" {
		p, err := internal.GetDataDir("gamedex")
		if err != nil {
			return "", err
		}
		root = p
	}
	if deps.Runtime != nil {
		expanded, err := toolkit.ExpandPath(deps.Runtime, root)
		if err != nil {
			return "", fmt.Errorf("unable to resolve catalog root: %w", err)
		}
		root = expanded
	}
	return root, nil
}
