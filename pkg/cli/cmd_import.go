package cli

import (
	"fmt"
	"os"

	"github.com/gamedex/gamedex/pkg/catalog"
	"github.com/spf13/cobra"
)

func NewImportCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "import games from markdown fixtures",
		Long: `Create games from markdown documents. The first H1 becomes the title,
the paragraph after it the summary, and YAML frontmatter supplies the
release date, ratings, and tag lists. Attached tags are ensured in their
taxonomies as part of the import.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := deps.Store

			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				doc, err := catalog.ParseGameDoc(data)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				id, err := s.NextGameID(ctx)
				if err != nil {
					return err
				}
				d := doc.Descriptor(id)

				// Ensure every attached tag exists; invalid titles drop out
				// silently, keeping the import best-effort.
				for _, t := range catalog.TagTypes {
					field := t.TagField()
					attached := d.TagList(field)
					if len(attached) == 0 {
						continue
					}
					kept := make([]string, 0, len(attached))
					for _, title := range attached {
						stored, err := s.EnsureTag(ctx, t, title)
						if err != nil {
							return err
						}
						if stored != "" {
							kept = append(kept, stored)
						}
					}
					d.SetTagList(field, kept)
				}

				if _, err := s.Create(ctx, catalog.TypeGames, d); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %q as game %d\n", doc.Title, id)
			}
			return nil
		},
	}
	return cmd
}
