package project

import (
	"fmt"
	"strings"

	"gitlab.com/codelab-2026.net/internal/static/errs"
)

const maxFileNameLength = 100

// forbiddenSequences is the sole defense against path traversal in
// filenames. ".." covers names like "../../../etc/passwd" as well as
// "test/../../secret.py" together with the separator checks.
var forbiddenSequences = []string{
	"..", "/", "\\", ":", "*", "?", "\"", "<", ">", "|",
}

func (s *ProjectService) validateFileName(filename string) error {
	if filename == "" {
		return fmt.Errorf("%w: filename cannot be empty", errs.InvalidFilename)
	}
	if len(filename) > maxFileNameLength {
		return fmt.Errorf("%w: filename exceeds %d characters", errs.InvalidFilename, maxFileNameLength)
	}

	for _, seq := range forbiddenSequences {
		if strings.Contains(filename, seq) {
			return fmt.Errorf("%w: filename contains forbidden sequence %q", errs.InvalidFilename, seq)
		}
	}

	dot := strings.LastIndex(filename, ".")
	if dot <= 0 {
		return fmt.Errorf("%w: filename must have an extension", errs.InvalidFilename)
	}

	ext := strings.ToLower(filename[dot:])
	for _, allowed := range s.cfg.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: file extension %q is not allowed", errs.InvalidFilename, ext)
}

func (s *ProjectService) validateContent(content string) error {
	// len on a string counts UTF-8 encoded bytes.
	if len(content) > s.cfg.MaxFileSizeBytes {
		return fmt.Errorf("%w (%d bytes)", errs.ContentTooLarge, s.cfg.MaxFileSizeBytes)
	}
	return nil
}
