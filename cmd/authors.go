package cmd

import (
	"context"
	"fmt"

	"catalog-manager/core/utils"
	"catalog-manager/feature/catalog/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// namedCommands builds list and delete subcommands for authors or genres.
func namedCommands(
	kind string,
	list func(ctx context.Context, a *app) ([][2]string, error),
	remove func(ctx context.Context, a *app, id int) (int, error),
) *cobra.Command {
	parent := &cobra.Command{
		Use:   kind + "s",
		Short: "Manage " + kind + "s",
	}

	parent.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every " + kind,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), kind+"s_list", func(a *app, _ *zap.Logger) error {
				rows, err := list(cmd.Context(), a)
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No %ss\n", kind)
				}
				for _, r := range rows {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r[0], r[1])
				}
				return nil
			})
		},
	})

	parent.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + kind + ". Its books go too when catalog.cascade_delete is set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := utils.ParseID(args[0])
			if err != nil {
				return fmt.Errorf("%w: %v", models.ErrValidation, err)
			}
			return withApp(cmd.Context(), kind+"s_delete", func(a *app, _ *zap.Logger) error {
				removed, err := remove(cmd.Context(), a, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d and %d book(s)\n", kind, id, removed)
				return nil
			})
		},
	})
	return parent
}

var authorsCmd = namedCommands("author",
	func(ctx context.Context, a *app) ([][2]string, error) {
		authors, err := a.svc.ListAuthors(ctx)
		rows := make([][2]string, 0, len(authors))
		for _, au := range authors {
			rows = append(rows, [2]string{utils.ToString(au.ID), au.Name})
		}
		return rows, err
	},
	func(ctx context.Context, a *app, id int) (int, error) {
		return a.svc.DeleteAuthor(ctx, id)
	},
)

var genresCmd = namedCommands("genre",
	func(ctx context.Context, a *app) ([][2]string, error) {
		genres, err := a.svc.ListGenres(ctx)
		rows := make([][2]string, 0, len(genres))
		for _, g := range genres {
			rows = append(rows, [2]string{utils.ToString(g.ID), g.Name})
		}
		return rows, err
	},
	func(ctx context.Context, a *app, id int) (int, error) {
		return a.svc.DeleteGenre(ctx, id)
	},
)

func init() {
	RootCmd.AddCommand(authorsCmd, genresCmd)
}
