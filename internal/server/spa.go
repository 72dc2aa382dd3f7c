package server

import (
	"net/http"
	"path"
	"path/filepath"
)

// handleSPA serves the prebuilt front end from dir. A path that is not a
// file gets index.html so client-side routes resolve. index.html is sent
// with no-cache so a redeployed bundle is picked up.
func handleSPA(dir string) http.HandlerFunc {
	root := http.Dir(dir)
	files := http.FileServer(root)
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if isFile(root, r.URL.Path) {
			files.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, index)
	}
}

func isFile(root http.FileSystem, name string) bool {
	f, err := root.Open(path.Clean("/" + name))
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	return err == nil && !info.IsDir()
}
