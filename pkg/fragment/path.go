package fragment

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/implx/pkg/types"
)

const (
	implementorsDir = "implementors"
	traitPrefix     = "trait."
)

// TraitFromPath derives a trait path from a fragment's location. The file
// must be named trait.<Name>.<ext>; the directories below the last
// "implementors" directory form the module path.
func TraitFromPath(p string) (types.TraitPath, bool) {
	segments := strings.Split(path.Clean(filepath.ToSlash(p)), "/")

	file := segments[len(segments)-1]
	if !strings.HasPrefix(file, traitPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(file, traitPrefix)
	if ext := path.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	if name == "" {
		return "", false
	}

	dirs := segments[:len(segments)-1]
	start := -1
	for i := len(dirs) - 1; i >= 0; i-- {
		if dirs[i] == implementorsDir {
			start = i + 1
			break
		}
	}
	if start < 0 || start >= len(dirs) {
		return "", false
	}

	module := append(append([]string{}, dirs[start:]...), name)
	return types.TraitPath(strings.Join(module, "::")), true
}
