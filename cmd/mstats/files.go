package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moodmelody/melodystats/internal/open"
	"github.com/moodmelody/melodystats/internal/search"
	"github.com/moodmelody/melodystats/internal/store"
	"github.com/moodmelody/melodystats/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func filesCmd() *cobra.Command {
	var ext string
	var limit int

	cmd := &cobra.Command{
		Use:   "files [filter]",
		Short: "Browse counted files, largest first",
		Long: `Lists the files recorded by the last 'mstats langstats' run. The optional
filter matches file paths and, failing that, file contents.

On a terminal an interactive browser opens (Enter copies the path, Ctrl-O
opens the file in $EDITOR). When piped, output is TSV:
  lines, ext, path, line, snippet`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := store.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			root, err := filepath.Abs(cfg.Root)
			if err != nil {
				return err
			}
			if ext != "" && !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			opts := search.Options{Root: root, Ext: ext, Limit: limit}
			if len(args) == 1 {
				opts.Query = args[0]
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				chosen, err := tui.Run(db, opts)
				if err != nil || chosen == nil {
					return err
				}
				return open.OpenFile(chosen.Path)
			}

			results, err := search.Search(db, opts)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No files found. Run 'mstats langstats' first.")
				return nil
			}
			for _, r := range results {
				snippet := strings.NewReplacer("\t", " ", "\n", " ").Replace(r.Snippet)
				fmt.Printf("%d\t%s\t%s\t%d\t%s\n", r.Lines, r.Ext, r.Rel, r.LineNum, snippet)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ext, "ext", "", "Only files with this extension")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 = no limit)")

	return cmd
}
