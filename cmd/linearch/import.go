package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tom26757207-cyber/line-archive/internal/scan"
	"github.com/tom26757207-cyber/line-archive/internal/session"
	"github.com/tom26757207-cyber/line-archive/internal/store"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|dir>...",
		Short: "Import LINE transcript exports (.txt) or archive documents (.json)",
		Long: `Import one or more exported LINE transcripts or previously exported
archive documents. Directories are walked for .txt exports. Re-importing an
archive whose session already exists replaces it and promotes it to the
front.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, arch, closeStore, err := openArchive()
			if err != nil {
				return err
			}
			defer closeStore()

			var paths []string
			for _, arg := range args {
				info, err := os.Stat(arg)
				if err != nil {
					return fmt.Errorf("stat %s: %w", arg, err)
				}
				if info.IsDir() {
					files, err := scan.ScanDir(arg)
					if err != nil {
						return fmt.Errorf("scan %s: %w", arg, err)
					}
					for _, f := range files {
						paths = append(paths, f.Path)
					}
					continue
				}
				paths = append(paths, arg)
			}

			for _, path := range paths {
				if err := importOne(arch, path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func importOne(arch *store.Archive, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var s *session.Session
	if isArchiveDoc(path, raw) {
		s, err = session.ImportArchive(raw)
	} else {
		s, err = session.FromTranscript(raw, filepath.Base(path))
		if err == nil {
			if dup := findByHash(arch, s.ContentHash); dup != nil {
				fmt.Fprintf(os.Stderr, "skipped %s: identical content already stored as %s\n",
					filepath.Base(path), dup.ID)
				return nil
			}
		}
	}
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	replaced := false
	if _, ok := arch.Get(s.ID); ok {
		replaced = true
	}
	if err := arch.Insert(s); err != nil {
		return fmt.Errorf("store %s: %w", path, err)
	}

	verb := "imported"
	if replaced {
		verb = "replaced"
	}
	fmt.Fprintf(os.Stderr, "%s %s: %s (%d messages, %d participants)\n",
		verb, filepath.Base(path), s.ID, len(s.Messages), len(s.Participants))
	return nil
}

func findByHash(arch *store.Archive, hash string) *session.Session {
	for _, s := range arch.Sessions() {
		if s.ContentHash == hash {
			return s
		}
	}
	return nil
}

// isArchiveDoc distinguishes an exported archive document from a raw
// transcript: .json extension or a leading JSON object.
func isArchiveDoc(path string, raw []byte) bool {
	if filepath.Ext(path) == ".json" {
		return true
	}
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}
