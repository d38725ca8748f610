package types

import (
	"io/fs"
)

// FS is the read-only filesystem interface fragment loading requires
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}
