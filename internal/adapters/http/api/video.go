package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// VideoHandler streams the match video.
type VideoHandler struct {
	deps Dependencies
}

// NewVideoHandler creates a new video handler.
func NewVideoHandler(deps Dependencies) *VideoHandler {
	return &VideoHandler{deps: deps}
}

// HandleVideo handles GET /video requests. The file is passed through
// unmodified; byte ranges are honoured so players can seek.
func (h *VideoHandler) HandleVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	path := h.deps.VideoPath()
	if path == "" {
		writeError(w, http.StatusNotFound, "not_found", ErrNoVideo)
		return
	}
	f, err := os.Open(path)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", errors.Wrap(ErrNoVideo, filepath.Base(path)))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "not_found", errors.Wrap(ErrNoVideo, filepath.Base(path)))
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
