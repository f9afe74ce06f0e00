//go:build unix

package backend

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// resizeHandler turns SIGWINCH into resize events.
type resizeHandler struct {
	fd      int
	sigCh   chan os.Signal
	eventCh chan ResizeEvent
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func newResizeHandler(fd int, events chan ResizeEvent) *resizeHandler {
	return &resizeHandler{
		fd:      fd,
		sigCh:   make(chan os.Signal, 1),
		eventCh: events,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (r *resizeHandler) start() {
	signal.Notify(r.sigCh, syscall.SIGWINCH)
	go r.watchLoop()
}

func (r *resizeHandler) stop() {
	signal.Stop(r.sigCh)
	close(r.stopCh)
	<-r.doneCh
}

func (r *resizeHandler) watchLoop() {
	defer close(r.doneCh)

	for {
		select {
		case <-r.stopCh:
			return
		case <-r.sigCh:
			ws, err := unix.IoctlGetWinsize(r.fd, unix.TIOCGWINSZ)
			if err != nil || ws.Col == 0 || ws.Row == 0 {
				continue
			}
			sendLatest(r.eventCh, ResizeEvent{Width: int(ws.Col), Height: int(ws.Row)})
		}
	}
}
