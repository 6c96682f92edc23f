package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"enumkit/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create an enumkit.toml",
	Long: `Init writes a commented enumkit.toml into [path], or the current directory.
The directory is created when it does not exist.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var (
	initType  string
	initForce bool
)

func init() {
	initCmd.Flags().StringVar(&initType, "type", "", "first type to configure")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing manifest")
}

// runInit resolves the target directory, creates it when needed and writes
// the manifest template. An existing manifest is kept unless --force is set.
func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}
	if root, ok, err := project.FindRoot(filepath.Dir(target)); err == nil && ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %s is inside the project rooted at %s\n", target, root)
	}
	manifestPath, err := writeManifest(target, initType, initForce)
	if err != nil {
		return err
	}
	rel := manifestPath
	if r, err := filepath.Rel(wd, manifestPath); err == nil {
		rel = r
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", rel)
	return nil
}

func writeManifest(dir, typ string, force bool) (string, error) {
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return "", fmt.Errorf("%q is not a directory", dir)
	}

	manifestPath := filepath.Join(dir, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", manifestPath)
	}
	text := project.Template(".", typ)
	// the template must stay loadable
	if _, err := project.DecodeConfig(text); err != nil {
		return "", err
	}
	if err := os.WriteFile(manifestPath, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return manifestPath, nil
}
