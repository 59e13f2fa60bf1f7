// Package web serves the machine to browsers over a websocket. Every browser
// sees the same screen and hears the same tone, and any of them can press
// keys.
package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/adrichey/go-chip8vm/emulator"
	"github.com/adrichey/go-chip8vm/runner"
	"github.com/adrichey/go-chip8vm/screendigest"
	"github.com/gorilla/websocket"
	"github.com/retroenv/retrogolib/log"
)

const DEFAULT_ADDR = ":8090"

//go:embed index.html
var indexPage []byte

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server implements runner.Frontend and runner.AudioSink. Its methods are
// called from the runner goroutine and only talk to the hub through
// channels.
type Server struct {
	hub      *hub
	http     *http.Server
	listener net.Listener
	logger   *log.Logger

	frames screendigest.Tracker
	tone   bool
}

// Listen starts serving on addr.
func Listen(addr string, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.NewNop()
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}

	s := &Server{
		hub:      newHub(),
		listener: l,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveIndex)
	mux.HandleFunc("/ws", s.serveWebsocket)
	s.http = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go s.hub.run()
	go func() {
		if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("web server stopped", log.Err(err))
		}
	}()

	s.logger.Info("web frontend listening", log.String("addr", l.Addr().String()))

	return s, nil
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)
	s.hub.stop()
	return err
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", log.String("remote", r.RemoteAddr), log.Err(err))
		return
	}

	c := &client{
		hub:    s.hub,
		conn:   conn,
		send:   make(chan []byte, 64),
		logger: s.logger,
		remote: r.RemoteAddr,
	}

	select {
	case s.hub.register <- c:
	case <-s.hub.done:
		_ = conn.Close()
		return
	}

	c.logger.Info("browser connected", log.String("remote", c.remote))

	go c.writePump()
	go c.readPump()
}

// Poll applies the key messages that arrived since the last frame.
func (s *Server) Poll(keys *emulator.Keypad) runner.Event {
	ev := runner.EventNone

	for {
		select {
		case in := <-s.hub.input:
			switch in.event {
			case Key:
				if in.down {
					keys.Press(in.key)
				} else {
					keys.Release(in.key)
				}
			case Reset:
				ev = runner.EventReset
			}
			continue
		default:
		}
		break
	}

	return ev
}

// Present sends fb to the browsers, unless they already have that screen,
// and clears its dirty flag.
func (s *Server) Present(fb *emulator.FrameBuffer) error {
	packed := fb.Packed()
	fb.ClearDirty()

	if !s.frames.Changed(packed) {
		return nil
	}
	return s.publish(encodeFrame(packed))
}

// SetTone forwards changes of the tone.
func (s *Server) SetTone(on bool) error {
	if on == s.tone {
		return nil
	}
	s.tone = on
	return s.publish(encodeTone(on))
}

func (s *Server) publish(msg []byte) error {
	select {
	case s.hub.broadcast <- msg:
		return nil
	case <-s.hub.done:
		return errors.New("web frontend closed")
	}
}
