// Package server implements cmdmend's session server: a long-lived
// process that keeps the inference and embedding engines resident and
// exposes the ask/fix pipeline over a Unix domain socket, one JSON
// message per line.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/fwojciec/cmdmend"
	"github.com/fwojciec/cmdmend/protocol"
)

// Server holds the resident pipeline and serves IPC requests. Exactly
// one instance may run per machine, enforced by the lock file.
type Server struct {
	SocketPath string
	LockPath   string
	Asker      cmdmend.Asker
	Fixer      cmdmend.Fixer
	Logger     *slog.Logger

	ctx      context.Context
	lock     *Lock
	ln       net.Listener
	wg       sync.WaitGroup
	stopOnce sync.Once
	done     chan struct{}
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Start acquires the instance lock and begins listening. Returns
// ECONFLICT when another live server holds the lock; the running
// instance is left untouched.
func (s *Server) Start(ctx context.Context) error {
	s.ctx = ctx
	s.done = make(chan struct{})

	s.lock = NewLock(s.LockPath)
	if err := s.lock.Acquire(); err != nil {
		return err
	}

	// A dead server may have left its socket file behind; the lock
	// already guarantees no live listener owns it.
	if err := os.Remove(s.SocketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.lock.Release()
		return err
	}

	ln, err := net.Listen("unix", s.SocketPath)
	if err != nil {
		s.lock.Release()
		return err
	}
	s.ln = ln

	s.logger().Info("session server listening", "socket", s.SocketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Wait blocks until the server has stopped.
func (s *Server) Wait() {
	<-s.done
}

// Stop shuts the server down gracefully: stops accepting, waits for
// in-flight requests, removes the socket and releases the lock.
func (s *Server) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		if s.ln != nil {
			err = s.ln.Close()
		}
		s.wg.Wait()
		if rerr := os.Remove(s.SocketPath); rerr != nil && !errors.Is(rerr, os.ErrNotExist) && err == nil {
			err = rerr
		}
		if lerr := s.lock.Release(); lerr != nil && err == nil {
			err = lerr
		}
		close(s.done)
		s.logger().Info("session server stopped")
	})
	return err
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			// Listener closed during shutdown.
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), protocol.MaxFrameSize)
	enc := json.NewEncoder(conn)

	for scanner.Scan() {
		var req protocol.Request
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			s.writeError(enc, cmdmend.EINVALID, "malformed frame: "+err.Error())
			return
		}

		resp, stop := s.handle(req)
		if err := enc.Encode(resp); err != nil {
			// Client went away; any completed model work is discarded.
			s.logger().Debug("failed to write response", "error", err)
			return
		}
		if stop {
			go s.Stop()
			return
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			s.writeError(enc, cmdmend.EINVALID, "frame exceeds maximum size")
			return
		}
		s.logger().Debug("connection read failed", "error", err)
	}
}

// handle dispatches a single request. The returned bool reports
// whether the server should shut down after responding.
func (s *Server) handle(req protocol.Request) (protocol.Response, bool) {
	if req.Version != protocol.Version {
		return errorResponse(cmdmend.EINVALID,
			"protocol version mismatch: client %d, server %d",
			req.Version, protocol.Version), false
	}

	switch req.Op {
	case protocol.OpPing:
		return protocol.Response{Version: protocol.Version}, false

	case protocol.OpStop:
		return protocol.Response{Version: protocol.Version}, true

	case protocol.OpAsk:
		answer, err := s.Asker.Ask(s.ctx, req.Question)
		if err != nil {
			return errorResponse(cmdmend.ErrorCode(err), "%s", cmdmend.ErrorMessage(err)), false
		}
		return protocol.Response{Version: protocol.Version, Answer: answer}, false

	case protocol.OpFix:
		fix, err := s.Fixer.Fix(s.ctx, cmdmend.FailedCommand{
			Command:  req.Command,
			ExitCode: req.ExitCode,
			Stderr:   req.Stderr,
		})
		if err != nil {
			return errorResponse(cmdmend.ErrorCode(err), "%s", cmdmend.ErrorMessage(err)), false
		}
		return protocol.Response{
			Version: protocol.Version,
			Fix:     &protocol.Fix{Command: fix.Command, Raw: fix.Raw, Parsed: fix.Parsed},
		}, false

	default:
		return errorResponse(cmdmend.EINVALID, "unknown operation %q", req.Op), false
	}
}

func (s *Server) writeError(enc *json.Encoder, code, message string) {
	resp := protocol.Response{
		Version: protocol.Version,
		Error:   &protocol.Error{Code: code, Message: message},
	}
	if err := enc.Encode(resp); err != nil {
		s.logger().Debug("failed to write error response", "error", err)
	}
}

func errorResponse(code, format string, args ...any) protocol.Response {
	return protocol.Response{
		Version: protocol.Version,
		Error:   &protocol.Error{Code: code, Message: cmdmend.Errorf(code, format, args...).Message},
	}
}
