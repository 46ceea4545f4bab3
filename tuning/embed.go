package tuning

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var tuningFS embed.FS

// Load returns the named tuning document. A copy on disk under tuning/
// wins over the embedded one so values can be edited while running.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return tuningFS.ReadFile(clean)
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "tuning/") {
		return strings.TrimPrefix(s, "tuning/")
	}
	return s
}

func diskPath(clean string) string {
	return filepath.Join("tuning", filepath.FromSlash(clean))
}
