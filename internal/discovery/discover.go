package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover recursively finds all files below rootPath whose extension is in
// extensions (compared case-insensitively, with the leading dot). A
// rootPath naming a file yields that file regardless of its extension.
func Discover(rootPath string, extensions []string) ([]DiscoveredFile, error) {
	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("path not found: %s", absRoot)
		}
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return []DiscoveredFile{{
			Path:         absRoot,
			RelativePath: filepath.Base(absRoot),
			Syntax:       ClassifyFile(absRoot),
			ModTime:      info.ModTime(),
		}}, nil
	}

	exts := make([]string, len(extensions))
	for i, ext := range extensions {
		exts[i] = strings.ToLower(ext)
	}

	var files []DiscoveredFile

	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Skip directories we can't access
			if os.IsPermission(err) {
				return nil
			}
			return err
		}

		if info.IsDir() {
			return nil
		}

		if !slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}

		files = append(files, DiscoveredFile{
			Path:         path,
			RelativePath: relPath,
			Syntax:       ClassifyFile(path),
			ModTime:      info.ModTime(),
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// DiscoverSQL finds only SQL files below rootPath
func DiscoverSQL(rootPath string) ([]DiscoveredFile, error) {
	allFiles, err := Discover(rootPath, []string{".sql"})
	if err != nil {
		return nil, err
	}

	var sqlFiles []DiscoveredFile
	for _, file := range allFiles {
		if file.Syntax.Name == SyntaxSQL.Name {
			sqlFiles = append(sqlFiles, file)
		}
	}

	return sqlFiles, nil
}
