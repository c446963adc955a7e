package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackcoderx/reqport/pkg/storage"
	"github.com/blackcoderx/reqport/pkg/tui"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		as    string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "import <postman_collection.json>",
		Short: "Import a Postman v2.1 collection as a saved collection",
		Long: `Import a Postman collection into .reqport/collections.

Folders are flattened into request names like "Users/List". Collection
variables are written to an environment of the same name, unless one
already exists, so {{base_url}} style placeholders keep working.`,
		Example: `  reqport import shop.postman_collection.json
  reqport export curl -c shop -e shop`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			c, vars, err := storage.ImportPostman(data)
			if err != nil {
				return err
			}

			name := as
			if name == "" {
				name = storage.Slug(c.Name)
			}
			if name == "" {
				name = storage.Slug(strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])))
			}
			if c.Name == "" {
				c.Name = name
			}

			dir := a.folder()
			path := storage.CollectionPath(dir, name)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("collection '%s' already exists (use --force to replace it)", name)
			}
			if err := storage.SaveCollection(*c, path); err != nil {
				return err
			}
			a.logger.Debug("imported collection",
				zap.String("path", path),
				zap.Int("requests", len(c.Requests)),
				zap.Int("variables", len(vars)),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tui.Success(fmt.Sprintf("imported %d requests into collection %s", len(c.Requests), tui.Path(name))))

			if len(vars) == 0 {
				return nil
			}
			envPath := storage.EnvironmentPath(dir, name)
			if _, err := os.Stat(envPath); err == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), tui.Hint("environment "+name+" exists, variables not written"))
				return nil
			}
			if err := storage.SaveEnvironment(vars, envPath); err != nil {
				return err
			}
			fmt.Fprintln(out, tui.Success(fmt.Sprintf("saved %d variables to environment %s", len(vars), tui.Path(name))))
			return nil
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "collection name to save under (default: slug of the collection name)")
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing collection")
	return cmd
}
