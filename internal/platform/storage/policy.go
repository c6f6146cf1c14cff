package storage

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultMaxFileSizeBytes int64 = 5 * 1024 * 1024
	defaultCategory               = "misc"
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Policy holds the limits applied before any byte reaches a backend.
type Policy struct {
	MaxFileSizeBytes int64
}

func (p Policy) maxBytes() int64 {
	if p.MaxFileSizeBytes <= 0 {
		return DefaultMaxFileSizeBytes
	}
	return p.MaxFileSizeBytes
}

// NormalizeExtension lowercases ext and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func checkExtension(ext string) (string, error) {
	norm := NormalizeExtension(ext)
	if _, ok := allowedExtensions[norm]; !ok {
		return "", &Error{Code: CodeExtensionNotAllowed, Detail: fmt.Sprintf("extension %q is not allowed", ext)}
	}
	return norm, nil
}

// sanitizeSegment keeps [a-z0-9-_] after lowercasing and turning spaces into
// dashes, so no caller input can introduce separators or dot segments.
func sanitizeSegment(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.ReplaceAll(raw, " ", "-")
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func sanitizeCategory(raw string) string {
	if c := sanitizeSegment(raw); c != "" {
		return c
	}
	return defaultCategory
}

// objectKey builds "{category}/{prefix}-{random hex}{ext}".
func objectKey(category, prefix, ext string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")
	name := suffix + ext
	if p := sanitizeSegment(prefix); p != "" {
		name = p + "-" + name
	}
	return path.Join(sanitizeCategory(category), name)
}

// cleanKey validates a stored relative path before it is handed to a backend.
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != key || strings.Contains(cleaned, "..") {
		return "", &Error{Code: CodeInvalidPath, Detail: fmt.Sprintf("invalid path %q", key)}
	}
	return cleaned, nil
}

// limitReader fails with CodeTooLarge once more than max bytes were read.
type limitReader struct {
	r    io.Reader
	max  int64
	read int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.read > l.max {
		return n, &Error{Code: CodeTooLarge, Detail: fmt.Sprintf("file exceeds %d bytes", l.max)}
	}
	return n, err
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
