package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tom26757207-cyber/line-archive/internal/session"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export [session-id]",
		Short: "Export a session as a self-contained archive document",
		Long: `Writes the session — messages, participants, content hash and any
attached analysis — as one JSON document. Re-importing the document
reproduces the session exactly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			data, err := session.ExportArchive(s)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(os.Stderr, "exported %s to %s\n", s.ID, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}
