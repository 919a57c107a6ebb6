package config

import (
	"os"
	"strconv"
	"strings"
)

// ProjectConfig holds the per-project file quotas and the filename
// extension allowlist.
type ProjectConfig struct {
	MaxFiles          int
	MaxFileSizeBytes  int
	AllowedExtensions []string
}

func NewProjectConfig() *ProjectConfig {
	maxFiles, err := strconv.Atoi(os.Getenv("PROJECT_MAX_FILES"))
	if err != nil || maxFiles <= 0 {
		maxFiles = 10
	}
	maxSize, err := strconv.Atoi(os.Getenv("PROJECT_MAX_FILE_SIZE"))
	if err != nil || maxSize <= 0 {
		maxSize = 100000
	}

	extensions := []string{".py", ".java", ".cpp", ".c", ".js", ".h", ".hpp", ".txt", ".md"}
	if raw := os.Getenv("PROJECT_ALLOWED_EXTENSIONS"); raw != "" {
		extensions = nil
		for _, ext := range strings.Split(raw, ",") {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			extensions = append(extensions, ext)
		}
	}

	return &ProjectConfig{
		MaxFiles:          maxFiles,
		MaxFileSizeBytes:  maxSize,
		AllowedExtensions: extensions,
	}
}
