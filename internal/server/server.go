// internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/AlverezYari/framecheck/internal/capture"
	"github.com/AlverezYari/framecheck/internal/logging"
	"github.com/gorilla/websocket"
)

// Encoder turns a frame into the bytes sent to preview clients.
type Encoder func(capture.Frame) ([]byte, error)

// Server is a browser preview: every frame passed to Show is encoded and
// pushed to all clients connected on /ws/camera.
type Server struct {
	addr            string
	runID           string
	server          *http.Server
	isRunning       bool
	encode          Encoder
	upgrader        websocket.Upgrader
	wsConnections   map[*websocket.Conn]bool
	wsConnectionsMu sync.Mutex
}

func New(addr, runID string, encode Encoder) *Server {
	return &Server{
		addr:   addr,
		runID:  runID,
		encode: encode,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		wsConnections: make(map[*websocket.Conn]bool),
	}
}

// Handler routes the preview endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/camera", s.handleWebSocketCamera)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "framecheck preview, run %s\n", s.runID)
	})
	return mux
}

// Start binds the listen address and serves in the background.
func (s *Server) Start() error {
	if s.isRunning {
		return fmt.Errorf("server is already running")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", s.addr, err)
	}

	s.server = &http.Server{Handler: s.Handler()}
	go func() {
		if err := s.server.Serve(ln); err != http.ErrServerClosed {
			logging.Errorf("preview server error: %v", err)
		}
	}()

	s.isRunning = true
	logging.Infof("preview server listening on %s", ln.Addr())
	return nil
}

func (s *Server) Stop() error {
	if !s.isRunning {
		return fmt.Errorf("server is not running")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.wsConnectionsMu.Lock()
	for conn := range s.wsConnections {
		conn.Close()
		delete(s.wsConnections, conn)
	}
	s.wsConnectionsMu.Unlock()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.isRunning = false
	logging.Infof("preview server stopped")
	return nil
}

func (s *Server) IsRunning() bool {
	return s.isRunning
}

func (s *Server) handleWebSocketCamera(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warningf("error upgrading websocket connection from %s: %v", r.RemoteAddr, err)
		return
	}
	logging.Infof("preview client connected from %s", r.RemoteAddr)

	s.wsConnectionsMu.Lock()
	s.wsConnections[conn] = true
	s.wsConnectionsMu.Unlock()

	defer func() {
		conn.Close()
		s.wsConnectionsMu.Lock()
		delete(s.wsConnections, conn)
		s.wsConnectionsMu.Unlock()
	}()

	// Clients never send anything useful; reading just notices disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			logging.Debugf("preview client %s gone: %v", r.RemoteAddr, err)
			return
		}
	}
}

// Clients reports how many preview clients are connected.
func (s *Server) Clients() int {
	s.wsConnectionsMu.Lock()
	defer s.wsConnectionsMu.Unlock()
	return len(s.wsConnections)
}

// Show encodes the frame and broadcasts it. Frames are skipped while no
// client is connected; errors are logged and dropped.
func (s *Server) Show(label string, f capture.Frame) {
	if s.Clients() == 0 {
		return
	}
	b, err := s.encode(f)
	if err != nil {
		logging.Warningf("preview: %v", err)
		return
	}
	s.BroadcastFrame(b)
}

func (s *Server) BroadcastFrame(frameBytes []byte) {
	s.wsConnectionsMu.Lock()
	defer s.wsConnectionsMu.Unlock()
	for conn := range s.wsConnections {
		if err := conn.WriteMessage(websocket.BinaryMessage, frameBytes); err != nil {
			logging.Warningf("error writing frame to websocket: %v", err)
			conn.Close()
			delete(s.wsConnections, conn)
		}
	}
}
