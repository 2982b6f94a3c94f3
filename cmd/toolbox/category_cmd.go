package main

import (
	"github.com/spf13/cobra"
)

func newCategoryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage categories and their apps",
	}
	cmd.AddCommand(
		newCategoryListCmd(opts),
		newCategoryAddCmd(opts),
		newCategoryRenameCmd(opts),
		newCategoryRemoveCmd(opts),
		newCategoryReorderCmd(opts),
		newCategoryAssignCmd(opts),
		newCategoryUnassignCmd(opts),
		newCategorySetCmd(opts),
	)
	return cmd
}

// categoryAction builds a subcommand that runs one mutating command.
func categoryAction(opts *rootOptions, use, short string, args cobra.PositionalArgs, run func(e *env, cmd *cobra.Command, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, a []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()
			return run(e, cmd, a)
		},
	}
}

func newCategoryListCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := categoryAction(opts, "list", "List categories in display order", cobra.NoArgs,
		func(e *env, cmd *cobra.Command, _ []string) error {
			return printNames(cmd.OutOrStdout(), e.svc.GetCategoryList(), asJSON)
		})
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newCategoryAddCmd(opts *rootOptions) *cobra.Command {
	return categoryAction(opts, "add <name>", "Append an empty category", cobra.ExactArgs(1),
		func(e *env, cmd *cobra.Command, args []string) error {
			if err := check(e.svc.AddCategory(args[0]), "failed to add category '%s'", args[0]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Added category %s", args[0])
			return nil
		})
}

func newCategoryRenameCmd(opts *rootOptions) *cobra.Command {
	return categoryAction(opts, "rename <name> <new-name>", "Rename a category in place", cobra.ExactArgs(2),
		func(e *env, cmd *cobra.Command, args []string) error {
			if err := check(e.svc.RenameCategory(args[0], args[1]), "failed to rename category '%s' to '%s'", args[0], args[1]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Renamed category %s to %s", args[0], args[1])
			return nil
		})
}

func newCategoryRemoveCmd(opts *rootOptions) *cobra.Command {
	cmd := categoryAction(opts, "remove <name>", "Remove a category; its apps stay registered", cobra.ExactArgs(1),
		func(e *env, cmd *cobra.Command, args []string) error {
			if err := check(e.svc.RemoveCategory(args[0]), "failed to remove category '%s'", args[0]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Removed category %s", args[0])
			return nil
		})
	cmd.Aliases = []string{"rm"}
	return cmd
}

func newCategoryReorderCmd(opts *rootOptions) *cobra.Command {
	cmd := categoryAction(opts, "reorder <name>...", "Rebuild the category list in the given order", cobra.ArbitraryArgs,
		func(e *env, cmd *cobra.Command, args []string) error {
			if args == nil {
				args = []string{}
			}
			if err := check(e.svc.UpdateCategories(args), "failed to reorder categories"); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Categories now: %v", e.svc.GetCategoryList())
			return nil
		})
	cmd.Long = `Rebuild the category list from the given names, in order. Each
category keeps its apps and categories left out are dropped. An unknown
or repeated name fails and leaves the catalog unchanged.`
	return cmd
}

func newCategoryAssignCmd(opts *rootOptions) *cobra.Command {
	return categoryAction(opts, "assign <category> <app>...", "Append apps to a category", cobra.MinimumNArgs(2),
		func(e *env, cmd *cobra.Command, args []string) error {
			category, apps := args[0], args[1:]
			var ok bool
			if len(apps) == 1 {
				ok = e.svc.AddAppToCategory(apps[0], category)
			} else {
				ok = e.svc.AddAppListToCategory(apps, category)
			}
			if err := check(ok, "failed to add %v to category '%s'", apps, category); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Added %d app(s) to %s", len(apps), category)
			return nil
		})
}

func newCategoryUnassignCmd(opts *rootOptions) *cobra.Command {
	return categoryAction(opts, "unassign <category> <app>", "Remove an app from a category", cobra.ExactArgs(2),
		func(e *env, cmd *cobra.Command, args []string) error {
			if err := check(e.svc.RemoveAppFromCategory(args[1], args[0]), "failed to remove app '%s' from category '%s'", args[1], args[0]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Removed %s from %s", args[1], args[0])
			return nil
		})
}

func newCategorySetCmd(opts *rootOptions) *cobra.Command {
	return categoryAction(opts, "set <category> [app]...", "Replace a category's app list", cobra.MinimumNArgs(1),
		func(e *env, cmd *cobra.Command, args []string) error {
			category, apps := args[0], args[1:]
			if apps == nil {
				apps = []string{}
			}
			if err := check(e.svc.UpdateAppsInCategory(apps, category), "failed to set apps of category '%s'", category); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "%s now has %d app(s)", category, len(apps))
			return nil
		})
}
