package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/openpipe/flameset/pkg/errors"
	"github.com/openpipe/flameset/pkg/logging"
)

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "FLAMESET_"

// SettingsFileName is the canonical settings file name
const SettingsFileName = "flameset.toml"

// SettingsFileNames are the file names probed in the working directory
// when no explicit settings path is given
var SettingsFileNames = []string{SettingsFileName, ".flameset.toml", "flameset.yaml"}

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load reads settings from the given file path layered over the
// embedded defaults and under FLAMESET_* environment overrides.
// An empty path probes SettingsFileNames in the working directory;
// running with no settings file at all is valid (defaults only).
func Load(path string) (*Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	// 2. Settings file
	if path == "" {
		path = findSettingsFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded settings file")
	}

	// 3. Environment overrides for scalar settings
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var settings Settings
	if err := k.UnmarshalWithConf("", &settings, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal settings")
	}

	logger.Debug().
		Int("templates", len(settings.Templates)).
		Int("plate_presets", len(settings.PlatePresets)).
		Str("instance", settings.Instance).
		Msg("Settings loaded")

	return &settings, nil
}

// findSettingsFile probes the working directory for a settings file
func findSettingsFile() string {
	for _, name := range SettingsFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// parserFor picks a koanf parser based on the file extension
func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}
