package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tom26757207-cyber/line-archive/internal/config"
	"github.com/tom26757207-cyber/line-archive/internal/session"
	"github.com/tom26757207-cyber/line-archive/internal/store"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "linearch",
		Short:   "LINE transcript archive for long-term-care case documentation",
		Version: version,
	}

	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// findSession resolves a full session ID or a unique ID prefix. With an
// empty argument it falls back to the active session.
func findSession(arch *store.Archive, arg string) (*session.Session, error) {
	if arg == "" {
		if s, ok := arch.Active(); ok {
			return s, nil
		}
		return nil, fmt.Errorf("no active session; pass a session id")
	}

	if s, ok := arch.Get(arg); ok {
		return s, nil
	}

	var match *session.Session
	for _, s := range arch.Sessions() {
		if strings.HasPrefix(s.ID, arg) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous session id prefix %q", arg)
			}
			match = s
		}
	}
	if match == nil {
		return nil, fmt.Errorf("session not found: %s", arg)
	}
	return match, nil
}

// openArchive loads config and the persisted collection. The returned
// closer must be deferred by the caller.
func openArchive() (*config.Config, *store.Archive, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	blob, err := store.OpenSQLite(cfg.StorePath)
	if err != nil {
		return nil, nil, nil, err
	}

	arch, err := store.Open(blob)
	if err != nil {
		blob.Close()
		return nil, nil, nil, err
	}

	return cfg, arch, func() { blob.Close() }, nil
}
