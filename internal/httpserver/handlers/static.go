package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/MrSnakeDoc/linkbatch/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbatch/internal/logger"
	"github.com/MrSnakeDoc/linkbatch/internal/utils"
)

const (
	cacheNoCache   = "no-cache"
	cacheImmutable = "public, max-age=31536000, immutable"
)

// Static serves the front-end bundle from d.StaticDir. Unknown paths fall
// back to index.html so client-side routes resolve.
func Static(d deps.Deps) http.HandlerFunc {
	root := d.StaticDir
	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if name == "/" {
			name = "/index.html"
		}

		if serveFile(w, r, filepath.Join(root, filepath.FromSlash(name)), cacheControl(name)) {
			return
		}

		if !serveFile(w, r, filepath.Join(root, "index.html"), cacheNoCache) {
			d.Logger.Error("front-end bundle not found",
				logger.String("static_dir", root))
			http.Error(w, "Build artifacts not found. Build the front-end into "+root+" first.", http.StatusInternalServerError)
		}
	}
}

// cacheControl returns the Cache-Control value for a bundle path: HTML is
// revalidated, hashed assets are cached forever, extensionless files get none.
func cacheControl(name string) string {
	switch ext := path.Ext(name); ext {
	case "":
		return ""
	case ".html":
		return cacheNoCache
	default:
		return cacheImmutable
	}
}

// serveFile writes a regular file and reports whether it existed.
func serveFile(w http.ResponseWriter, r *http.Request, file, cache string) bool {
	f, err := os.Open(file)
	if err != nil {
		return false
	}
	defer utils.Close(f)

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	if cache != "" {
		w.Header().Set("Cache-Control", cache)
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
