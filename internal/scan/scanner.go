// Package scan locates LINE export text files for batch import.
package scan

import (
	"os"
	"path/filepath"
	"strings"
)

type FileInfo struct {
	Path string
	Size int64
}

// ScanDir walks root and returns every .txt export found, skipping hidden
// directories. Unreadable entries are skipped, not fatal.
func ScanDir(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if strings.HasPrefix(filepath.Base(path), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".txt" {
			return nil
		}
		files = append(files, FileInfo{
			Path: path,
			Size: info.Size(),
		})
		return nil
	})
	return files, err
}
