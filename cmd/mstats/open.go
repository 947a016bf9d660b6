package main

import (
	"github.com/moodmelody/melodystats/internal/open"
	"github.com/moodmelody/melodystats/internal/store"
	"github.com/spf13/cobra"
)

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Open a counted file in $EDITOR at its first non-blank line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := store.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			path, err := open.Resolve(db, cfg.Root, args[0])
			if err != nil {
				return err
			}
			return open.OpenFile(path)
		},
	}
}
