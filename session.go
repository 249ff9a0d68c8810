package vconsole

import (
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Session binds one VC to a real shell running behind a PTY, the
// concrete stand-in SPEC_FULL.md's session-daemon component uses for
// "the teletype line discipline ... producing the input byte stream"
// that spec.md §1 names as an external collaborator.
type Session struct {
	ID  uuid.UUID
	VC  *VirtualConsole
	cmd *exec.Cmd
	pty *os.File

	log *zap.Logger

	mu      sync.Mutex
	viewers map[*websocket.Conn]struct{}
}

// NewSession spawns shell as a child process attached to a new PTY,
// bound to vc. Output from the shell is fed into vc.Write; nothing
// reads vc's injected-response queue back into the PTY automatically —
// callers that want a full loop should pump [ConsoleSubsystem.Injector]
// into the PTY master themselves.
func NewSession(vc *VirtualConsole, shell string, log *zap.Logger) (*Session, error) {
	cmd := exec.Command(shell)
	f, err := pty.Start(cmd)
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:      uuid.New(),
		VC:      vc,
		cmd:     cmd,
		pty:     f,
		log:     log,
		viewers: map[*websocket.Conn]struct{}{},
	}
	go s.pump()
	return s, nil
}

// pump copies PTY output into the VC and fans it out to any attached
// websocket viewers, until the PTY closes.
func (s *Session) pump() {
	buf := make([]byte, 4096)
	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			if _, werr := s.VC.Write(chunk); werr != nil && s.log != nil {
				s.log.Warn("vc write failed", zap.Error(werr))
			}
			s.broadcast(chunk)
		}
		if err != nil {
			if s.log != nil {
				s.log.Info("session pty closed", zap.String("session", s.ID.String()), zap.Error(err))
			}
			return
		}
	}
}

// Write sends input bytes (e.g. from a viewer's keyboard) to the
// shell's PTY master.
func (s *Session) Write(data []byte) (int, error) {
	return s.pty.Write(data)
}

// AddViewer registers a websocket connection to receive raw output
// broadcasts.
func (s *Session) AddViewer(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewers[conn] = struct{}{}
}

// RemoveViewer unregisters a websocket connection.
func (s *Session) RemoveViewer(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.viewers, conn)
}

func (s *Session) broadcast(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.viewers {
		if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			delete(s.viewers, conn)
			conn.Close()
		}
	}
}

// Close terminates the shell and its PTY.
func (s *Session) Close() error {
	_ = s.pty.Close()
	return s.cmd.Process.Kill()
}
