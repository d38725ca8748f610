package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/implx/pkg/filesystem"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/spf13/afero"
)

// CreateFile creates a file with the given content in dir, creating parent
// directories as needed, and returns its path.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// FragmentTree writes files (relative path to content) below a fresh
// temporary directory and returns that directory.
func FragmentTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		CreateFile(t, root, name, content)
	}
	return root
}

// MemoryFS returns an in-memory types.FS holding files
func MemoryFS(t *testing.T, files map[string]string) types.FS {
	t.Helper()

	fsys, mem := filesystem.NewMemory()
	for path, content := range files {
		if err := mem.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", path, err)
		}
		if err := afero.WriteFile(mem, path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	return fsys
}

// Implementors builds an implementor set from alternating library names
// and entry lists:
//
//	Implementors("ramp", []string{"impl A for B"}, "libc", nil)
func Implementors(pairs ...interface{}) types.Implementors {
	out := types.Implementors{}
	for i := 0; i+1 < len(pairs); i += 2 {
		lib := pairs[i].(string)
		entries := []types.Implementor{}
		list, _ := pairs[i+1].([]string)
		for _, e := range list {
			entries = append(entries, types.Implementor(e))
		}
		out[lib] = entries
	}
	return out
}

// Delivery is shorthand for a types.Delivery
func Delivery(trait string, impls types.Implementors) types.Delivery {
	return types.Delivery{Trait: types.TraitPath(trait), Implementors: impls}
}
