package lg

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// RawResource is a resource as handed out by a provider.
type RawResource struct {
	ID      string
	Content string
}

// ResourceProvider enumerates resources and supplies their content.
type ResourceProvider interface {
	ListResources() ([]RawResource, error)
	GetResource(id string) (RawResource, error)
}

// DefaultExtensions are the file extensions FileSystemProvider loads when
// none are configured.
var DefaultExtensions = []string{".lg"}

// FileSystemProvider serves files below Root. Ids are slash separated paths
// relative to Root.
type FileSystemProvider struct {
	Root       string
	Extensions []string
}

// NewFileSystemProvider returns a provider for root, e.g. ./resources.
func NewFileSystemProvider(root string, extensions ...string) *FileSystemProvider {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &FileSystemProvider{Root: root, Extensions: extensions}
}

// ListResources walks Root and reads every file with a matching extension.
// Unreadable files are reported together after the walk.
func (p *FileSystemProvider) ListResources() ([]RawResource, error) {
	var (
		res  []RawResource
		errs error
	)
	err := filepath.WalkDir(p.Root, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !p.matches(file) {
			return nil
		}
		rel, err := filepath.Rel(p.Root, file)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "read %s", file))
			return nil
		}
		res = append(res, RawResource{ID: filepath.ToSlash(rel), Content: string(data)})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", p.Root)
	}
	return res, errs
}

// GetResource reads a single resource by id.
func (p *FileSystemProvider) GetResource(id string) (RawResource, error) {
	id = path.Clean(normalizeID(id))
	if strings.HasPrefix(id, "../") || id == ".." || path.IsAbs(id) {
		return RawResource{}, errors.Wrapf(ErrResourceNotFound, "%q is outside %s", id, p.Root)
	}
	data, err := os.ReadFile(filepath.Join(p.Root, filepath.FromSlash(id)))
	if errors.Is(err, fs.ErrNotExist) {
		return RawResource{}, errors.Wrapf(ErrResourceNotFound, "%q", id)
	}
	if err != nil {
		return RawResource{}, errors.Wrapf(err, "read %s", id)
	}
	return RawResource{ID: id, Content: string(data)}, nil
}

func (p *FileSystemProvider) matches(file string) bool {
	exts := p.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	ext := filepath.Ext(file)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// MemoryProvider serves resources from a map of id to content.
type MemoryProvider map[string]string

// ListResources returns the resources ordered by id.
func (m MemoryProvider) ListResources() ([]RawResource, error) {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	res := make([]RawResource, 0, len(ids))
	for _, id := range ids {
		res = append(res, RawResource{ID: id, Content: m[id]})
	}
	return res, nil
}

// GetResource returns the resource stored under id.
func (m MemoryProvider) GetResource(id string) (RawResource, error) {
	content, ok := m[id]
	if !ok {
		return RawResource{}, errors.Wrapf(ErrResourceNotFound, "%q", id)
	}
	return RawResource{ID: id, Content: content}, nil
}
