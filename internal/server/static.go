package server

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Tmacphee13/simplelife/internal/config"
	"github.com/containerd/errdefs"
	"github.com/gorilla/mux"
)

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, r, config.IndexFile)
}

func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, r, mux.Vars(r)["path"])
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	f, info, err := s.open(name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer f.Close()

	// Content type comes from the requested name's extension.
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// open resolves a slash-separated request path to a regular file under the
// root. Paths that are not local to the root, including ones that leave it
// through a symlink, are reported as not found.
func (s *Server) open(name string) (*os.File, fs.FileInfo, error) {
	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return nil, nil, fmt.Errorf("%q is outside the root: %w", name, errdefs.ErrNotFound)
	}

	f, err := os.OpenInRoot(s.root, rel)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, nil, fmt.Errorf("opening %q: %w: %w", name, errdefs.ErrInternal, err)
		}
		return nil, nil, fmt.Errorf("opening %q: %w: %w", name, errdefs.ErrNotFound, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat %q: %w: %w", name, errdefs.ErrInternal, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, fmt.Errorf("%q is not a regular file: %w", name, errdefs.ErrNotFound)
	}
	return f, info, nil
}
