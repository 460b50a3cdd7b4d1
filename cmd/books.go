package cmd

import (
	"fmt"
	"io"

	"catalog-manager/core/utils"
	"catalog-manager/feature/catalog/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	bookTitle       string
	bookAuthor      string
	bookGenre       string
	bookDescription string
)

// booksCmd represents the books command
var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Manage books",
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every book",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), "books_list", func(a *app, _ *zap.Logger) error {
			books, err := a.svc.ListBooks(cmd.Context())
			if err != nil {
				return err
			}
			printBooks(cmd.OutOrStdout(), books)
			return nil
		})
	},
}

var booksFindCmd = &cobra.Command{
	Use:   "find <fragment>",
	Short: "Find books whose title contains fragment, ignoring case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), "books_find", func(a *app, _ *zap.Logger) error {
			books, err := a.svc.FindBooksByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printBooks(cmd.OutOrStdout(), books)
			return nil
		})
	},
}

var booksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book, creating its author and genre when missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), "books_add", func(a *app, _ *zap.Logger) error {
			added, err := a.svc.AddBook(cmd.Context(), models.Book{
				Title:       bookTitle,
				Description: bookDescription,
				Author:      models.Author{Name: bookAuthor},
				Genre:       models.Genre{Name: bookGenre},
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added book %d\n", added.ID)
			return nil
		})
	},
}

var booksEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a book. Flags left unset keep the current value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := utils.ParseID(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", models.ErrValidation, err)
		}
		return withApp(cmd.Context(), "books_edit", func(a *app, _ *zap.Logger) error {
			book, err := a.svc.GetBook(cmd.Context(), id)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				book.Title = bookTitle
			}
			if flags.Changed("description") {
				book.Description = bookDescription
			}
			if flags.Changed("author") {
				book.Author = models.Author{Name: bookAuthor}
			}
			if flags.Changed("genre") {
				book.Genre = models.Genre{Name: bookGenre}
			}
			if err := a.svc.EditBook(cmd.Context(), &book); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated book %d\n", book.ID)
			return nil
		})
	},
}

var booksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a book. Its author and genre stay",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := utils.ParseID(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", models.ErrValidation, err)
		}
		return withApp(cmd.Context(), "books_delete", func(a *app, _ *zap.Logger) error {
			if err := a.svc.DeleteBook(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted book %d\n", id)
			return nil
		})
	},
}

func printBooks(w io.Writer, books []models.Book) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books")
		return
	}
	for _, b := range books {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Author.Name, b.Genre.Name, b.Description)
	}
}

func init() {
	for _, c := range []*cobra.Command{booksAddCmd, booksEditCmd} {
		c.Flags().StringVar(&bookTitle, "title", "", "Book title")
		c.Flags().StringVar(&bookAuthor, "author", "", "Author name")
		c.Flags().StringVar(&bookGenre, "genre", "", "Genre name")
		c.Flags().StringVar(&bookDescription, "description", "", "Book description")
	}
	_ = booksAddCmd.MarkFlagRequired("title")
	_ = booksAddCmd.MarkFlagRequired("author")
	_ = booksAddCmd.MarkFlagRequired("genre")

	booksCmd.AddCommand(booksListCmd, booksFindCmd, booksAddCmd, booksEditCmd, booksDeleteCmd)
	RootCmd.AddCommand(booksCmd)
}
