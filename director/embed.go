package director

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// LoadScript returns the named pacing script. A copy on disk under
// director/scripts/ wins over the embedded one so edits can be picked
// up by a live reload.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(filepath.Join("director", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return scriptsFS.ReadFile(clean)
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "director/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "director/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return "scripts/" + s
}
