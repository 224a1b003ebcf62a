package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bookdim/bookdim/internal/io/landing"
	"github.com/bookdim/bookdim/pkg/templates"
	"github.com/spf13/cobra"
)

func getSourcesCmd() *cobra.Command {
	var initRegistry bool

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Lists registered landing sources",
		Long: `Lists the sources registered in sources.yaml, with their format, file
and enabled state.

With --init, writes a default sources.yaml registry instead. Existing
registries are never overwritten.

Examples:
  bookdim sources
  bookdim sources --init`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig()
			path := cfg.SourcesPath()

			if initRegistry {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("sources registry already exists at %s", path)
				}
				if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
					return fmt.Errorf("failed to create landing directory: %w", err)
				}
				if err := os.WriteFile(path, []byte(templates.SourcesYAML), 0644); err != nil {
					return fmt.Errorf("failed to write sources registry: %w", err)
				}
				fmt.Printf("Generated default sources registry at: %s\n", path)
				return nil
			}

			reg, err := landing.LoadRegistry(path)
			if err != nil {
				return err
			}

			for _, src := range reg.Sources {
				state := "enabled"
				if !src.IsEnabled() {
					state = "disabled"
				}
				fmt.Printf("%-16s %-5s %-32s %s\n", src.Name, src.Format, src.File, state)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&initRegistry, "init", false,
		"write a default sources.yaml registry")

	return cmd
}
