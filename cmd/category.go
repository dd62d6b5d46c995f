package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	categoryDescription string
	categoryPurge       bool
	categoryEncrypt     bool
	categoryRemove      bool
)

func init() {
	categoryCreateCmd.Flags().StringVar(&categoryDescription, "description", "", "human-readable description")
	categoryDeleteCmd.Flags().BoolVar(&categoryPurge, "purge", false, "also delete the category's repository copies")
	categoryAddPathCmd.Flags().BoolVar(&categoryEncrypt, "encrypt", false, "store files matching the pattern encrypted")
	categoryExcludeCmd.Flags().BoolVar(&categoryRemove, "remove", false, "remove the exclude pattern instead of adding it")

	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryShowCmd)
	categoryCmd.AddCommand(categoryCreateCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
	categoryCmd.AddCommand(categoryAddPathCmd)
	categoryCmd.AddCommand(categoryRemovePathCmd)
	categoryCmd.AddCommand(categoryExcludeCmd)
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
	Long: `A category is a named group of glob patterns. Each category owns a
directory of the same name in the repository.

Examples:
  confect category create web --description "web server" '/etc/nginx/**'
  confect category add-path web '/etc/ssl/private/*.key' --encrypt
  confect category exclude web '/etc/nginx/*.bak'`,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}

		infos, err := workflows.ListCategories(cmd.Context(), env)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(infos) == 0 {
			fmt.Fprintln(out, "No categories yet")
			return nil
		}
		rows := make([][]string, 0, len(infos))
		for _, c := range infos {
			rows = append(rows, []string{c.Name, strconv.Itoa(c.Files), strconv.Itoa(len(c.Paths)), c.Description})
		}
		ui.PrintTable(out, []string{"Name", "Files", "Patterns", "Description"}, rows)
		return nil
	},
}

var categoryShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a category's patterns and tracked files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}

		detail, err := workflows.ShowCategory(cmd.Context(), env, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Heading.Sprint(detail.Name))
		if detail.Description != "" {
			fmt.Fprintln(out, "  "+detail.Description)
		}
		printPatterns(out, "Paths", detail.Paths)
		printPatterns(out, "Encrypt", detail.Encrypt)
		printPatterns(out, "Exclude", detail.Exclude)

		fmt.Fprintf(out, "Tracked files (%d):\n", len(detail.TrackedFiles))
		for _, f := range detail.TrackedFiles {
			fmt.Fprintln(out, "  "+ui.Path.Sprint(f))
		}
		return nil
	},
}

func printPatterns(out io.Writer, label string, patterns []string) {
	if len(patterns) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n  %s\n", label, strings.Join(patterns, "\n  "))
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create <name> [pattern...]",
	Short: "Create a category",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}

		if err := workflows.CreateCategory(cmd.Context(), env, args[0], categoryDescription, args[1:]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Created category "+ui.Category.Sprint(args[0]))
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}

		if err := workflows.DeleteCategory(cmd.Context(), env, args[0], categoryPurge); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Deleted category "+ui.Category.Sprint(args[0]))
		return nil
	},
}

var categoryAddPathCmd = &cobra.Command{
	Use:   "add-path <name> <pattern>",
	Short: "Add an include pattern to a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}

		if err := workflows.AddCategoryPath(cmd.Context(), env, args[0], args[1], categoryEncrypt); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Added "+ui.Code.Sprint(args[1])+" to "+ui.Category.Sprint(args[0]))
		return nil
	},
}

var categoryRemovePathCmd = &cobra.Command{
	Use:   "remove-path <name> <pattern>",
	Short: "Remove an include pattern from a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}

		if err := workflows.RemoveCategoryPath(cmd.Context(), env, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Removed "+ui.Code.Sprint(args[1])+" from "+ui.Category.Sprint(args[0]))
		return nil
	},
}

var categoryExcludeCmd = &cobra.Command{
	Use:   "exclude <name> <pattern>",
	Short: "Add or remove an exclude pattern",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}

		if err := workflows.ExcludeCategoryPath(cmd.Context(), env, args[0], args[1], categoryRemove); err != nil {
			return err
		}

		verb := "Excluded"
		if categoryRemove {
			verb = "No longer excluding"
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" "+verb+" "+ui.Code.Sprint(args[1])+" in "+ui.Category.Sprint(args[0]))
		return nil
	},
}
