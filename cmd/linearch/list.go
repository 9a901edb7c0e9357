package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tom26757207-cyber/line-archive/internal/render"
	"github.com/tom26757207-cyber/line-archive/internal/tui"
	"golang.org/x/term"
)

func listCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse archived sessions, newest first",
		Long: `Opens the interactive session browser when stdout is a terminal
(type to filter, Enter selects the active session). --plain prints one
fixed-width row per session instead. Piped output is TSV: id, createdAt,
messages, participants, analyzed, fileName.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, arch, closeStore, err := openArchive()
			if err != nil {
				return err
			}
			defer closeStore()

			onTTY := term.IsTerminal(int(os.Stdout.Fd()))
			if !plain && onTTY {
				return tui.Run(arch)
			}

			sessions := arch.Sessions()
			if len(sessions) == 0 {
				fmt.Fprintln(os.Stderr, "No sessions archived. Run 'linearch import <file>' first.")
				return nil
			}

			if onTTY {
				width, _, err := term.GetSize(int(os.Stdout.Fd()))
				if err != nil {
					width = 0
				}
				for _, s := range sessions {
					fmt.Println(render.SessionLine(s, width))
				}
				return nil
			}

			for _, s := range sessions {
				analyzed := "no"
				if s.Analysis != nil {
					analyzed = "yes"
				}
				fmt.Printf("%s\t%s\t%d\t%s\t%s\t%s\n",
					s.ID,
					s.CreatedAt.Format("2006-01-02 15:04"),
					len(s.Messages),
					strings.Join(s.Participants, ","),
					analyzed,
					s.FileName,
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Plain rows on a terminal, TSV when piped")

	return cmd
}
