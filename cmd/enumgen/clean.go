package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"enumkit/internal/cache"
	"enumkit/internal/project"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove cached inspection results",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	manifest, _, err := project.LoadManifest(".")
	if err != nil {
		return err
	}
	dir, err := cacheDir(manifest)
	if err != nil {
		return err
	}
	c, err := cache.Open(dir)
	if err != nil {
		return err
	}
	n := c.Len()
	if err := c.DropAll(); err != nil {
		return fmt.Errorf("failed to clean %q: %w", dir, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d entr%s from %s\n", n, plural(n, "y", "ies"), dir)
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
