package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var embedded embed.FS

// DiskRoot is searched before the embedded copies so edits picked up by the
// watcher take effect without a rebuild.
var DiskRoot = "prefabs"

// Load returns a prefab or tuning file by name ("enemy.yaml" or
// "prefabs/enemy.yaml").
func Load(name string) ([]byte, error) {
	return read(cleanPrefabPath(name))
}

// LoadScript returns a tengo script by name, with or without the scripts/
// prefix.
func LoadScript(name string) ([]byte, error) {
	return read(cleanScriptPath(name))
}

// Source reports where Load would read name from: "disk", "embedded" or ""
// when it exists in neither.
func Source(name string) string {
	clean := cleanPrefabPath(name)
	if clean == "" {
		return ""
	}
	if info, err := os.Stat(diskPath(clean)); err == nil && !info.IsDir() {
		return "disk"
	}
	if _, err := embedded.Open(clean); err == nil {
		return "embedded"
	}
	return ""
}

func read(clean string) ([]byte, error) {
	if clean == "" {
		return nil, fmt.Errorf("prefabs: empty file name")
	}
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return embedded.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimPrefix(filepath.ToSlash(path), "prefabs/")
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	for _, prefix := range []string{"prefabs/", "scripts/"} {
		s = strings.TrimPrefix(s, prefix)
	}
	return "scripts/" + s
}

func diskPath(clean string) string {
	return filepath.Join(DiskRoot, filepath.FromSlash(clean))
}
