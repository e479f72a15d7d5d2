package imaging

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/roster/internal/core/domain"
)

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
}

var videoTypes = map[string]string{
	".mp4": "video/mp4",
	".mov": "video/quicktime",
	".m4v": "video/x-m4v",
}

// mimeType returns the MIME type for path if mediaType accepts it.
func mimeType(path string, mediaType domain.MediaType) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if mediaType != domain.MediaVideos {
		if mt, ok := imageTypes[ext]; ok {
			return mt, true
		}
	}
	if mediaType != domain.MediaImages {
		if mt, ok := videoTypes[ext]; ok {
			return mt, true
		}
	}
	return "", false
}

// fileURI turns a path into an absolute file:// URL.
func fileURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// newItem builds a library item for path.
func newItem(path, mimeType string, modTime time.Time) domain.LibraryItem {
	return domain.LibraryItem{
		Path:     path,
		Name:     filepath.Base(path),
		URI:      fileURI(path),
		MIMEType: mimeType,
		ModTime:  modTime,
	}
}

// NewItem stats path and checks it is a file mediaType accepts.
func NewItem(path string, mediaType domain.MediaType) (domain.LibraryItem, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.LibraryItem{}, err
	}
	if info.IsDir() {
		return domain.LibraryItem{}, &os.PathError{Op: "select", Path: path, Err: domain.ErrInvalidInput}
	}
	mt, ok := mimeType(path, mediaType)
	if !ok {
		return domain.LibraryItem{}, &os.PathError{Op: "select", Path: path, Err: domain.ErrInvalidInput}
	}
	return newItem(path, mt, info.ModTime()), nil
}
