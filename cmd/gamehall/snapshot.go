package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkoshev/gamehall/internal/config"
	"github.com/vkoshev/gamehall/internal/snapshot"
	"github.com/vkoshev/gamehall/internal/storage"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Generate one showcase batch and print the outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		store, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()

		generator := snapshot.NewGenerator(store, cfg.Snapshot.BatchSize, cfg.Snapshot.Retention(), nil)
		outcome := generator.Generate()

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcome); err != nil {
			return err
		}
		if outcome.Status == snapshot.StatusFailed {
			return fmt.Errorf("generation failed: %s", outcome.Reason)
		}
		return nil
	},
}
