// Package source lists directory entries for the tree rows.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-enry/go-enry/v2"
)

// Entry is one listed directory entry.
type Entry struct {
	Name     string
	Path     string
	IsDir    bool
	Size     int64
	Mode     os.FileMode
	ModTime  time.Time
	Language string // detected from the name; empty when unknown or a directory
	Vendored bool   // path looks like third-party or generated content
}

// Source lists the entries of a directory.
type Source interface {
	List(ctx context.Context, dir string) ([]Entry, error)
}

// FS lists the local filesystem.
type FS struct {
	ShowHidden bool
}

// Compile-time check.
var _ Source = FS{}

// List returns dir's entries, directories first, each group sorted by name.
func (f FS) List(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		name := d.Name()
		if !f.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		info, err := d.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		path := filepath.Join(dir, name)
		e := Entry{
			Name:     name,
			Path:     path,
			IsDir:    d.IsDir(),
			Size:     info.Size(),
			Mode:     info.Mode(),
			ModTime:  info.ModTime(),
			Vendored: enry.IsVendor(path),
		}
		if !e.IsDir {
			e.Language = DetectLanguage(name)
		} else {
			e.Size = 0
		}
		entries = append(entries, e)
	}
	Sort(entries)
	return entries, nil
}

// Sort orders entries directories first, then case-insensitively by name.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}

// DetectLanguage names the language of a file from its name alone. Names
// that map to more than one language yield "".
func DetectLanguage(name string) string {
	if lang, safe := enry.GetLanguageByFilename(name); safe {
		return lang
	}
	if lang, safe := enry.GetLanguageByExtension(name); safe {
		return lang
	}
	return ""
}
