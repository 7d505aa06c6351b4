package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Loader reads prefab files, preferring a copy under Dir on disk over the
// embedded one. An empty Dir reads only the embedded files.
type Loader struct {
	Dir string
}

func (l Loader) Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if l.Dir != "" {
		if data, err := os.ReadFile(l.diskPath(clean)); err == nil {
			return data, nil
		}
	}
	data, err := PrefabsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("prefabs: read %s: %w", clean, err)
	}
	return data, nil
}

func (l Loader) LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if l.Dir != "" {
		if data, err := os.ReadFile(l.diskPath(clean)); err == nil {
			return data, nil
		}
	}
	data, err := ScriptsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("prefabs: read script %s: %w", clean, err)
	}
	return data, nil
}

// Origin reports where Load would read name from: the file under Dir, or
// "embedded".
func (l Loader) Origin(name string) string {
	if l.Dir == "" {
		return "embedded"
	}
	path := l.diskPath(cleanPrefabPath(name))
	if _, err := os.Stat(path); err != nil {
		return "embedded"
	}
	return path
}

func (l Loader) diskPath(clean string) string {
	return filepath.Join(l.Dir, filepath.FromSlash(clean))
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return "scripts/" + s
}
