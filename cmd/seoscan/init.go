package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seoscan/seoscan/internal/config"
)

// NewInitCmd creates the init command.
// This command writes a default configuration file template.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Long: `Init writes a commented configuration file template to the current directory.

The generated file documents every available setting with its default value.
All settings are commented out, so the file changes nothing until you edit it.

Examples:
  # Create .seoscan in the current directory
  seoscan init

  # Create a configuration file at a custom path
  seoscan init -o myconfig.yaml

  # Overwrite an existing file
  seoscan init --force`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Path for the generated configuration file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite the file if it already exists")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if force {
		if err := os.WriteFile(path, []byte(config.DefaultFileContents), 0600); err != nil {
			return fmt.Errorf("failed to write configuration file: %w", err)
		}
	} else if err := config.WriteDefaultFile(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", path)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit it and uncomment the settings you want to change.")
	return nil
}
