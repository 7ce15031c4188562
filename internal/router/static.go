package router

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/AdonaIsium/workerboard/internal/response"
)

const missingResourceBody = "does not exist"

// serveFile treats path as a resource name inside content. Anything that is
// not a readable regular file is a 404.
func serveFile(content fs.FS, path string) (*response.Response, error) {
	name := strings.TrimPrefix(path, "/")
	if content == nil || !fs.ValidPath(name) || name == "." {
		return response.NotFound(missingResourceBody), nil
	}

	info, err := fs.Stat(content, name)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		return response.NotFound(missingResourceBody), nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if info.IsDir() {
		return response.NotFound(missingResourceBody), nil
	}

	data, err := fs.ReadFile(content, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return response.File(data, contentType(name)), nil
}

func contentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".html"):
		return "text/html"
	case strings.HasSuffix(name, ".css"):
		return "text/css"
	default:
		return "text/plain"
	}
}
