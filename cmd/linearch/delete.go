package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Remove a session from the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, arch, closeStore, err := openArchive()
			if err != nil {
				return err
			}
			defer closeStore()

			s, err := findSession(arch, args[0])
			if err != nil {
				return err
			}
			if err := arch.Delete(s.ID); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "deleted %s (%s)\n", s.ID, s.FileName)
			return nil
		},
	}
}
