package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for implx
	EnvConfigDir = "IMPLX_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for implx
	EnvStateDir = "IMPLX_STATE_DIR"
)

const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "implx"

	// LogFileName is the name of the log file
	LogFileName = "implx.log"
)

// ConfigFileNames are the file names probed, in order, for a config file
var ConfigFileNames = []string{".implx.toml", "implx.toml", ".implx.yaml", "implx.yaml"}

// Paths holds the resolved implx directories
type Paths struct {
	configDir string
	stateDir  string
}

// New resolves the implx directories from the environment
func New() *Paths {
	// Pick up XDG_* changes made after process start (tests use t.Setenv).
	xdg.Reload()

	p := &Paths{}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = expandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}
	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = expandHome(dir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}
	return p
}

// ConfigDir returns the implx config directory
func (p *Paths) ConfigDir() string { return p.configDir }

// StateDir returns the implx state directory
func (p *Paths) StateDir() string { return p.stateDir }

// LogFilePath returns the path of the implx log file
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// ConfigCandidates lists config file locations in increasing priority: the
// user config directory first, then the working directory.
func (p *Paths) ConfigCandidates(workDir string) []string {
	var out []string
	for _, dir := range []string{p.configDir, workDir} {
		if dir == "" {
			continue
		}
		for _, name := range ConfigFileNames {
			out = append(out, filepath.Join(dir, name))
		}
	}
	return out
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
