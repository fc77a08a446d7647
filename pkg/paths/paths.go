// Package paths provides centralized path handling for flameset.
// It implements XDG Base Directory specification compliance and
// resolves the cache locations where generated export presets are
// written, namespaced by app instance name.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/openpipe/flameset/pkg/errors"
	"github.com/openpipe/flameset/pkg/logging"
)

// Environment variable names
const (
	// EnvCacheDir overrides the XDG cache directory for flameset
	EnvCacheDir = "FLAMESET_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for flameset-specific files
	AppDirName = "flameset"

	// ExportPresetFileName is the name of the generated export preset file
	ExportPresetFileName = "export_preset.xml"
)

// Paths provides cache path management for flameset
type Paths interface {
	CacheDir() string
	InstanceDir(instance string) string
	ExportPresetPath(instance string) string
	EnsureInstanceDir(instance string) (string, error)
}

// paths provides cache path management backed by the XDG cache home
type paths struct {
	cacheDir string
}

// New creates a new Paths instance. The cache root is taken from
// FLAMESET_CACHE_DIR if set, otherwise from the XDG cache home.
func New() (Paths, error) {
	p := &paths{}

	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.cacheDir = expandHome(cacheDir)
	} else {
		p.cacheDir = filepath.Join(xdg.CacheHome, AppDirName)
	}

	absCache, err := filepath.Abs(p.cacheDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for cache dir")
	}
	p.cacheDir = absCache

	return p, nil
}

// CacheDir returns the root cache directory for flameset
func (p *paths) CacheDir() string {
	return p.cacheDir
}

// InstanceDir returns the cache directory for a given app instance.
// Each instance holds its own configuration and therefore generates
// its own set of preset files.
func (p *paths) InstanceDir(instance string) string {
	return filepath.Join(p.cacheDir, instance)
}

// ExportPresetPath returns the path of the export preset file for an instance
func (p *paths) ExportPresetPath(instance string) string {
	return filepath.Join(p.InstanceDir(instance), ExportPresetFileName)
}

// EnsureInstanceDir creates the instance cache directory if it does
// not exist. The directory is created world-writable so that preset
// files remain usable across the mixed user accounts that share a
// Flame workstation.
func (p *paths) EnsureInstanceDir(instance string) (string, error) {
	logger := logging.GetLogger("paths")
	dir := p.InstanceDir(instance)

	if _, err := os.Stat(dir); err == nil {
		return dir, nil
	}

	restore := clearUmask()
	err := os.MkdirAll(dir, 0o777)
	restore()

	if err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create cache directory %s", dir)
	}

	logger.Debug().Str("dir", dir).Msg("Created instance cache directory")
	return dir, nil
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
