package server

import (
	"net/http"

	"github.com/containerd/errdefs"
)

// statusCode maps a file lookup error to an HTTP status.
func statusCode(err error) int {
	switch {
	case errdefs.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	if code == http.StatusNotFound {
		s.logger.Debug("not found", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Error("serving file", "path", r.URL.Path, "error", err)
	}
	http.Error(w, http.StatusText(code), code)
}
