// Package loader reads configuration sources into nested maps: TOML files
// and TERMPAINT_ environment variables.
package loader

import "os"

// Loader produces one configuration layer as a nested map. A source that
// does not exist yields nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

// ReadFileFunc reads a whole file. os.ReadFile is the default; tests pass
// an in-memory lookup.
type ReadFileFunc func(path string) ([]byte, error)

// Sources returns the layers termpaint reads, lowest precedence first: the
// TOML file at path, then the process environment.
func Sources(path string) []Loader {
	return []Loader{
		NewTOMLLoader(path),
		NewEnvLoader(EnvPrefix),
	}
}

func defaultReadFile() ReadFileFunc {
	return os.ReadFile
}
