package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tom26757207-cyber/line-archive/internal/classify"
	"github.com/tom26757207-cyber/line-archive/internal/render"
	"golang.org/x/term"
)

func showCmd() *cobra.Command {
	var search, tag string
	var important, report bool

	cmd := &cobra.Command{
		Use:   "show [session-id]",
		Short: "Print a session timeline grouped by date",
		Long: `Renders the session's messages grouped by date. --search and --tag
compose with AND semantics; --important keeps only classifier-flagged
messages. --report prints the merged analysis instead of the timeline.
Without an argument the active session is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tag != "" && !classify.ValidTag(tag) {
				return fmt.Errorf("unknown tag %q (valid: payment, service, schedule, issue)", tag)
			}

			_, arch, closeStore, err := openArchive()
			if err != nil {
				return err
			}
			defer closeStore()

			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			s, err := findSession(arch, arg)
			if err != nil {
				return err
			}

			if report {
				fmt.Print(render.Report(s))
				return nil
			}

			plain := !term.IsTerminal(int(os.Stdout.Fd()))
			fmt.Print(render.Timeline(s, render.Options{
				Query:     search,
				Tag:       tag,
				Important: important,
				Plain:     plain,
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring match on content or sender")
	cmd.Flags().StringVar(&tag, "tag", "", "Filter by tag (payment/service/schedule/issue)")
	cmd.Flags().BoolVar(&important, "important", false, "Show only important messages")
	cmd.Flags().BoolVar(&report, "report", false, "Print the analysis report instead of the timeline")

	return cmd
}
