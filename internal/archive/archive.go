// Package archive keeps a copy of every ingested spreadsheet on disk,
// so an upload that produced a surprising merge can be re-examined.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Archive stores raw upload files under a single directory.
type Archive struct {
	dir string
}

// New creates the archive directory if missing.
func New(dir string) (*Archive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}
	return &Archive{dir: dir}, nil
}

// Save writes one uploaded file, named after the ingestion and the
// form part so both files of an upload sit next to each other.
func (a *Archive) Save(ingestionID, part, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(a.dir, fmt.Sprintf("%s_%s%s", ingestionID, part, ext))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("archiving %s: %w", part, err)
	}
	return path, nil
}
