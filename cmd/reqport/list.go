package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackcoderx/reqport/pkg/config"
	"github.com/blackcoderx/reqport/pkg/export"
	"github.com/blackcoderx/reqport/pkg/storage"
	"github.com/blackcoderx/reqport/pkg/tui"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved requests and collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			dir := a.folder()

			reqs, err := storage.ListRequests(dir)
			if err != nil {
				return err
			}
			if len(reqs) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), tui.Hint("no saved requests in "+storage.GetRequestsDir(dir)))
			}
			for _, r := range reqs {
				req, err := storage.FindRequest(dir, r)
				if err != nil {
					fmt.Fprintf(out, "%s\t(%v)\n", r, err)
					continue
				}
				fmt.Fprintf(out, "%s\t%s %s\n", r, strings.ToUpper(req.Method), req.URL)
			}

			collections, err := storage.ListCollections(dir)
			if err != nil {
				return err
			}
			for _, c := range collections {
				fmt.Fprintf(out, "collection\t%s\n", c)
			}
			return nil
		},
	}
}

func newEnvsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "envs",
		Short: "List environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envs, err := storage.ListEnvironments(a.folder())
			if err != nil {
				return err
			}
			for _, e := range envs {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
}

func newTargetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List export targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range export.Targets() {
				marker := " "
				if t.String() == a.settings.DefaultTarget {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-9s %-24s %s\n", marker, t, t.Filename(), t.MIMEType())
			}
			return nil
		},
	}
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the " + config.FolderName + " project folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := config.InitializeFolder(a.root)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintln(cmd.OutOrStdout(), tui.Success(config.FolderName+" folder initialized"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), tui.Success(config.FolderName+" folder already exists"))
			}
			return nil
		},
	}
}
