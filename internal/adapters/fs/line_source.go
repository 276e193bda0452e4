package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bft-labs/linecast/internal/domain"
)

// DefaultExtension is the file extension offered for selection.
const DefaultExtension = ".txt"

// LineSource implements ports.LineSource over a root directory.
type LineSource struct {
	root string
	ext  string
}

// NewLineSource creates a LineSource for files with extension ext under root.
// An empty ext means DefaultExtension.
func NewLineSource(root, ext string) *LineSource {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &LineSource{root: root, ext: ext}
}

// Root returns the directory identifiers are resolved against.
func (s *LineSource) Root() string {
	return s.root
}

// Path returns the file system path of identifier, or ErrNotFound if the
// identifier escapes the root.
func (s *LineSource) Path(identifier string) (string, error) {
	rel := filepath.FromSlash(identifier)
	if identifier == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q is not a file under %s", domain.ErrNotFound, identifier, s.root)
	}
	return filepath.Join(s.root, rel), nil
}

// Load reads identifier fully and splits it into records.
func (s *LineSource) Load(identifier string) (domain.RecordSequence, error) {
	path, err := s.Path(identifier)
	if err != nil {
		return domain.RecordSequence{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return domain.RecordSequence{}, fmt.Errorf("%w: %s: %v", domain.ErrNotFound, identifier, err)
	}
	if info.IsDir() {
		return domain.RecordSequence{}, fmt.Errorf("%w: %s is a directory", domain.ErrNotFound, identifier)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.RecordSequence{}, fmt.Errorf("%w: %s: %v", domain.ErrNotFound, identifier, err)
	}

	seq, err := domain.ParseRecords(data)
	if err != nil {
		return domain.RecordSequence{}, fmt.Errorf("%s: %w", identifier, err)
	}
	return seq, nil
}

// List walks the root recursively and returns slash-separated identifiers of
// files with the configured extension, in lexical walk order.
func (s *LineSource) List() ([]string, error) {
	ids := []string{}
	err := filepath.WalkDir(s.root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if path == s.root && errors.Is(err, iofs.ErrNotExist) {
				return iofs.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), s.ext) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		ids = append(ids, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
