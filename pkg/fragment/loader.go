package fragment

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/implx/pkg/errors"
	"github.com/arthur-debert/implx/pkg/logging"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/rs/zerolog"
)

// Loader reads fragment files through a types.FS
type Loader struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewLoader creates a loader reading from fs
func NewLoader(fs types.FS) *Loader {
	return &Loader{
		fs:     fs,
		logger: logging.GetLogger("fragment.loader"),
	}
}

// Load reads and decodes one fragment file
func (l *Loader) Load(path string) (*Fragment, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFragmentRead, "failed to read fragment %s", path).
			WithDetail("path", path)
	}
	frag, err := Decode(path, data)
	if err != nil {
		return nil, err
	}
	l.logger.Debug().
		Str("path", path).
		Str("trait", frag.Trait.String()).
		Int("implementors", frag.Implementors.Count()).
		Msg("Loaded fragment")
	return frag, nil
}

// LoadDir loads every supported fragment below dir. Files are visited in
// lexical path order, which fixes the order the fragments later run in.
// Files with unsupported extensions are skipped.
func (l *Loader) LoadDir(dir string) ([]*Fragment, error) {
	files, err := l.collect(dir)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	frags := make([]*Fragment, 0, len(files))
	for _, f := range files {
		frag, err := l.Load(f)
		if err != nil {
			return nil, err
		}
		frags = append(frags, frag)
	}
	return frags, nil
}

// LoadPaths loads each path in order; directories are expanded with LoadDir
func (l *Loader) LoadPaths(paths []string) ([]*Fragment, error) {
	var frags []*Fragment
	for _, p := range paths {
		info, err := l.fs.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFragmentRead, "failed to stat %s", p).
				WithDetail("path", p)
		}
		if info.IsDir() {
			dirFrags, err := l.LoadDir(p)
			if err != nil {
				return nil, err
			}
			frags = append(frags, dirFrags...)
			continue
		}
		frag, err := l.Load(p)
		if err != nil {
			return nil, err
		}
		frags = append(frags, frag)
	}
	return frags, nil
}

func (l *Loader) collect(dir string) ([]string, error) {
	entries, err := l.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFragmentRead, "failed to read directory %s", dir).
			WithDetail("path", dir)
	}

	var files []string
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if e.IsDir() {
			sub, err := l.collect(p)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
			continue
		}
		if !Supported(p) {
			l.logger.Trace().Str("path", p).Msg("Skipping unsupported file")
			continue
		}
		files = append(files, p)
	}
	return files, nil
}
