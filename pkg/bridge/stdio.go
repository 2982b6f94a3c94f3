package bridge

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

const (
	// MaxMessageSize is the maximum allowed frame size (1MB).
	MaxMessageSize = 1024 * 1024
)

// ReadFrame reads one frame: a 32-bit little-endian length prefix followed
// by that many bytes of JSON. A clean end of input returns io.EOF.
func ReadFrame(r io.Reader) ([]byte, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read message length: %w", err)
	}

	if length == 0 {
		return nil, fmt.Errorf("invalid message length: 0")
	}
	if length > MaxMessageSize {
		return nil, fmt.Errorf("message too large: %d bytes (max %d)", length, MaxMessageSize)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("failed to read message body: %w", err)
	}
	return buf, nil
}

// WriteFrame marshals v and writes it as one length-prefixed frame.
func WriteFrame(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if len(data) > MaxMessageSize {
		return fmt.Errorf("message too large: %d bytes (max %d)", len(data), MaxMessageSize)
	}

	frame := make([]byte, 4+len(data))
	binary.LittleEndian.PutUint32(frame, uint32(len(data)))
	copy(frame[4:], data)

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// StdioServer carries requests and events over a pair of byte streams, one
// frame per message. Responses and events share the output stream.
type StdioServer struct {
	in     io.Reader
	out    io.Writer
	mu     sync.Mutex // Serializes frames on out
	logger *zap.Logger
}

// NewStdioServer creates a server reading from in and writing to out.
func NewStdioServer(in io.Reader, out io.Writer, logger *zap.Logger) *StdioServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StdioServer{in: in, out: out, logger: logger}
}

// write sends one frame.
func (s *StdioServer) write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WriteFrame(s.out, v)
}

// Broadcast writes an event frame.
func (s *StdioServer) Broadcast(e Event) {
	if err := s.write(e); err != nil {
		s.logger.Warn("failed to write event", zap.String("type", string(e.Type)), zap.Error(err))
	}
}

// Show asks the front-end on the other end of the pipe to show its window.
func (s *StdioServer) Show() error {
	return s.write(NewEvent(EventWindowShow, nil))
}

// Serve handles requests until the input ends or ctx is cancelled. A frame
// that is not a valid request gets an error response; a broken stream ends
// the loop with an error.
func (s *StdioServer) Serve(ctx context.Context, d *Dispatcher) error {
	s.logger.Info("stdio bridge started")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		frame, err := ReadFrame(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Info("stdio bridge input closed")
				return nil
			}
			return err
		}

		var req Request
		if err := json.Unmarshal(frame, &req); err != nil {
			s.logger.Warn("malformed request", zap.Error(err))
			if err := s.write(Response{
				Type:  ResponseType,
				Error: fmt.Sprintf("failed to unmarshal request: %v", err),
			}); err != nil {
				return err
			}
			continue
		}

		if err := s.write(d.Dispatch(req)); err != nil {
			return err
		}
	}
}
