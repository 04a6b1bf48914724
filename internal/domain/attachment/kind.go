package attachment

import (
	"errors"
	"path/filepath"
	"strings"
)

// Kind is the coarse capability classification of an accepted attachment.
type Kind string

const (
	KindImage Kind = "image"
	KindFile  Kind = "file"
)

// ErrUnsafeType is returned when the declared name or MIME type matches the
// executable denylist. Uploads rejected this way are never written to storage.
var ErrUnsafeType = errors.New("attachment type is not allowed")

var executableExtensions = map[string]struct{}{
	"exe": {},
	"bat": {},
	"cmd": {},
	"com": {},
	"pif": {},
	"scr": {},
	"vbs": {},
	"js":  {},
	"jar": {},
	"msi": {},
	"dmg": {},
	"app": {},
}

var executableMIMEs = map[string]struct{}{
	"application/x-msdownload":      {},
	"application/x-executable":      {},
	"application/x-dosexec":         {},
	"application/x-msi":             {},
	"application/java-archive":      {},
	"application/javascript":        {},
	"text/javascript":               {},
	"application/x-apple-diskimage": {},
}

var imageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"webp": {},
}

// Classify maps a declared filename and MIME type to a Kind. It is a pure
// function so the policy table is testable independent of storage.
func Classify(filename, declaredMime string) (Kind, error) {
	ext := normalizedExt(filename)
	if _, denied := executableExtensions[ext]; denied {
		return "", ErrUnsafeType
	}
	mime := strings.ToLower(strings.TrimSpace(declaredMime))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if _, denied := executableMIMEs[mime]; denied {
		return "", ErrUnsafeType
	}

	if _, ok := imageExtensions[ext]; ok {
		return KindImage, nil
	}
	if ext == "" && strings.HasPrefix(mime, "image/") {
		return KindImage, nil
	}
	return KindFile, nil
}

func normalizedExt(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
