// Package environment provides read-only snapshots of the process
// environment consumed by completion queries. Queries never mutate the
// environment; tests substitute a fixture Snapshot for determinism.
package environment

import (
	"os"
	"path/filepath"
	"strings"
)

// Environment is the completion core's view of the host environment.
type Environment interface {
	// PathDirs returns the resolved list of PATH directories.
	PathDirs() []string
	// HomeDir returns the user's home directory, if known.
	HomeDir() (string, bool)
	// Cwd returns the current working directory.
	Cwd() string
	// LookupEnv returns the value of an environment variable.
	LookupEnv(key string) (string, bool)
}

// Snapshot is an immutable Environment backed by plain values.
type Snapshot struct {
	Path    []string
	Home    string
	WorkDir string
	Vars    map[string]string
}

var _ Environment = (*Snapshot)(nil)

// PathDirs returns the snapshot's PATH directories.
func (s *Snapshot) PathDirs() []string {
	return s.Path
}

// HomeDir returns the snapshot's home directory.
func (s *Snapshot) HomeDir() (string, bool) {
	return s.Home, s.Home != ""
}

// Cwd returns the snapshot's working directory.
func (s *Snapshot) Cwd() string {
	return s.WorkDir
}

// LookupEnv returns the value of a variable captured in the snapshot.
func (s *Snapshot) LookupEnv(key string) (string, bool) {
	v, ok := s.Vars[key]
	return v, ok
}

// Capture builds a Snapshot from the current process environment.
func Capture() *Snapshot {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	var pathDirs []string
	if path, ok := vars["PATH"]; ok {
		for _, dir := range filepath.SplitList(path) {
			if dir != "" {
				pathDirs = append(pathDirs, dir)
			}
		}
	}

	home, _ := os.UserHomeDir()
	cwd, err := os.Getwd()
	if err != nil {
		cwd = home
	}

	return &Snapshot{
		Path:    pathDirs,
		Home:    home,
		WorkDir: cwd,
		Vars:    vars,
	}
}
