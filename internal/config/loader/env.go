package loader

import (
	"os"
	"strings"
)

// EnvPrefix is the prefix of environment variables read by EnvLoader.
const EnvPrefix = "TRAYPREFS_"

// EnvLoader loads preference values from environment variables.
// Values are always strings; the registry validates them like any other
// user value.
type EnvLoader struct {
	mapping map[string]string // env var -> property key
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader using the default mappings.
func NewEnvLoader() *EnvLoader {
	return NewEnvLoaderWithMapping(defaultEnvMapping())
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		mapping: mapping,
		lookup:  os.LookupEnv,
	}
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		EnvPrefix + "TRAY_ICON_COLOR": "preferences.TrayIconColor",
	}
}

// Load reads the mapped variables. Empty values are treated as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	values := make(map[string]any)
	for env, key := range l.mapping {
		if val, ok := l.lookup(env); ok && strings.TrimSpace(val) != "" {
			values[key] = strings.TrimSpace(val)
		}
	}
	return values, nil
}
