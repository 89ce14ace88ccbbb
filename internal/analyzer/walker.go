package analyzer

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// fileInfo holds metadata about a discovered source file.
type fileInfo struct {
	Path    string
	RelPath string
	Size    int64
}

// maxFileSize is the largest file we'll consider (1 MB).
const maxFileSize = 1 << 20

const ignoreFilename = ".codescopeignore"

// defaultIgnores are always in effect, in addition to any .codescopeignore
// patterns in the project root.
var defaultIgnores = []string{
	".git",
	".svn",
	".hg",
	"node_modules",
	"vendor",
	"target",
	"__pycache__",
	".venv",
	".idea",
	".vscode",
	"dist",
	"build",
	"bin",
	"obj",
	".codescope",
}

// walk traverses the directory tree rooted at root and sends discovered
// source files on the returned channel. It only emits files whose extension
// is in allowedExts, and skips paths matching ignore patterns.
func walk(root string, allowedExts map[string]bool) (<-chan fileInfo, <-chan error) {
	files := make(chan fileInfo, 64)
	errs := make(chan error, 1)

	go func() {
		defer close(files)
		defer close(errs)

		absRoot, err := filepath.Abs(root)
		if err != nil {
			errs <- err
			return
		}

		matcher := loadIgnoreMatcher(absRoot)

		err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip errors, keep walking
			}
			if path == absRoot {
				return nil
			}

			rel, _ := filepath.Rel(absRoot, path)
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if matcher.MatchesPath(rel) || matcher.MatchesPath(rel+"/") {
					return filepath.SkipDir
				}
				return nil
			}

			// Skip symlinks.
			if d.Type()&fs.ModeSymlink != 0 {
				return nil
			}

			if matcher.MatchesPath(rel) {
				return nil
			}

			// Only process files with recognized extensions.
			ext := strings.TrimPrefix(filepath.Ext(path), ".")
			if !allowedExts[ext] {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return nil
			}

			// Skip large or empty files.
			if info.Size() > maxFileSize || info.Size() == 0 {
				return nil
			}

			files <- fileInfo{Path: path, RelPath: rel, Size: info.Size()}
			return nil
		})
		if err != nil {
			errs <- err
		}
	}()

	return files, errs
}

// loadIgnoreMatcher combines the default patterns with any .codescopeignore
// file in the project root.
func loadIgnoreMatcher(root string) *gitignore.GitIgnore {
	patterns := append([]string{}, defaultIgnores...)

	f, err := os.Open(filepath.Join(root, ignoreFilename))
	if err == nil {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			patterns = append(patterns, line)
		}
	}

	return gitignore.CompileIgnoreLines(patterns...)
}
