package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tom26757207-cyber/line-archive/internal/config"
	"github.com/tom26757207-cyber/line-archive/internal/store"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, store, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			fmt.Printf("  Store:         %s\n", cfg.StorePath)
			fmt.Printf("  Model:         %s\n", cfg.Model)
			fmt.Printf("  Sample window: %d\n", cfg.SampleWindow)
			if cfg.OpenAIAPIKey == "" {
				fmt.Println("  API key:       NOT SET (analyze will fail)")
			} else {
				fmt.Println("  API key:       set")
			}

			fmt.Println("\n=== Store ===")
			if _, err := os.Stat(cfg.StorePath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'linearch import' first)")
				return nil
			}

			blob, err := store.OpenSQLite(cfg.StorePath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer blob.Close()

			arch, err := store.Open(blob)
			if err != nil {
				return fmt.Errorf("load archive: %w", err)
			}

			sessions := arch.Sessions()
			messages, analyzed := 0, 0
			for _, s := range sessions {
				messages += len(s.Messages)
				if s.Analysis != nil {
					analyzed++
				}
			}
			fmt.Printf("  Sessions: %d\n", len(sessions))
			fmt.Printf("  Messages: %d\n", messages)
			fmt.Printf("  Analyzed: %d\n", analyzed)
			if active, ok := arch.Active(); ok {
				fmt.Printf("  Active:   %s\n", active.ID)
			}

			if info, err := os.Stat(cfg.StorePath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("\n=== Store Size: %.1f MB ===\n", sizeMB)
			}

			return nil
		},
	}
}
