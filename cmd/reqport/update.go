package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const releaseRepo = "blackcoderx/reqport"

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update reqport to the latest version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if version == "dev" {
				fmt.Fprintln(out, "You are running a development version of reqport. Update is not supported.")
				return nil
			}

			latest, found, err := selfupdate.DetectLatest(releaseRepo)
			if err != nil {
				return fmt.Errorf("failed to detect latest version: %w", err)
			}

			v, err := semver.Parse(strings.TrimPrefix(version, "v"))
			if err != nil {
				return fmt.Errorf("failed to parse current version '%s': %w", version, err)
			}

			if !found || latest.Version.LTE(v) {
				fmt.Fprintln(out, "Current version is the latest")
				return nil
			}

			fmt.Fprint(out, "Do you want to update to ", latest.Version, "? (y/n): ")
			input, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if strings.TrimSpace(input) != "y" {
				return nil
			}

			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("could not locate executable path: %w", err)
			}
			a.logger.Debug("updating binary", zap.String("path", exe), zap.String("asset", latest.AssetURL))
			if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
				return fmt.Errorf("failed to update binary: %w", err)
			}
			fmt.Fprintln(out, "Successfully updated to version", latest.Version)
			return nil
		},
	}
}
