//go:build !unix

package backend

// resizeHandler is inert where SIGWINCH does not exist.
type resizeHandler struct{}

func newResizeHandler(int, chan ResizeEvent) *resizeHandler {
	return &resizeHandler{}
}

func (r *resizeHandler) start() {}

func (r *resizeHandler) stop() {}
