// Package client provides a thin IPC client for cmdmend's session
// server. Each call dials the Unix socket, sends one JSON frame and
// reads one back.
package client

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/fwojciec/cmdmend"
	"github.com/fwojciec/cmdmend/protocol"
)

// DefaultDialTimeout bounds the liveness probe; a healthy local server
// accepts immediately.
const DefaultDialTimeout = 500 * time.Millisecond

// Compile-time interface verification.
var (
	_ cmdmend.Asker = (*Client)(nil)
	_ cmdmend.Fixer = (*Client)(nil)
)

// Client talks to a running session server.
type Client struct {
	socketPath  string
	dialTimeout time.Duration
}

// New creates a client for the given socket path.
func New(socketPath string) *Client {
	return &Client{
		socketPath:  socketPath,
		dialTimeout: DefaultDialTimeout,
	}
}

// Running reports whether a session server answers on the socket.
func (c *Client) Running(ctx context.Context) bool {
	return c.Ping(ctx) == nil
}

// Ping checks server liveness.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.roundTrip(ctx, protocol.Request{Op: protocol.OpPing})
	return err
}

// Stop asks the server to shut down gracefully.
func (c *Client) Stop(ctx context.Context) error {
	_, err := c.roundTrip(ctx, protocol.Request{Op: protocol.OpStop})
	return err
}

// Ask sends a question to the server.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	resp, err := c.roundTrip(ctx, protocol.Request{Op: protocol.OpAsk, Question: question})
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// Fix sends a failed command to the server.
func (c *Client) Fix(ctx context.Context, failed cmdmend.FailedCommand) (*cmdmend.FixSuggestion, error) {
	resp, err := c.roundTrip(ctx, protocol.Request{
		Op:       protocol.OpFix,
		Command:  failed.Command,
		ExitCode: failed.ExitCode,
		Stderr:   failed.Stderr,
	})
	if err != nil {
		return nil, err
	}
	if resp.Fix == nil {
		return nil, cmdmend.Errorf(cmdmend.EINTERNAL, "server returned no fix")
	}
	return &cmdmend.FixSuggestion{
		Command: resp.Fix.Command,
		Raw:     resp.Fix.Raw,
		Parsed:  resp.Fix.Parsed,
	}, nil
}

// roundTrip performs a single request/response exchange.
func (c *Client) roundTrip(ctx context.Context, req protocol.Request) (*protocol.Response, error) {
	req.Version = protocol.Version

	dialer := net.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, cmdmend.Errorf(cmdmend.EUNAVAILABLE, "server not running: %v", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, err
		}
	}

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, cmdmend.Errorf(cmdmend.EUNAVAILABLE, "failed to send request: %v", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), protocol.MaxFrameSize)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, cmdmend.Errorf(cmdmend.EUNAVAILABLE, "failed to read response: %v", err)
		}
		return nil, cmdmend.Errorf(cmdmend.EUNAVAILABLE, "server closed connection")
	}

	var resp protocol.Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return nil, cmdmend.Errorf(cmdmend.EINTERNAL, "malformed response: %v", err)
	}
	if resp.Version != protocol.Version {
		return nil, cmdmend.Errorf(cmdmend.EINVALID,
			"protocol version mismatch: client %d, server %d", protocol.Version, resp.Version)
	}
	if resp.Error != nil {
		return nil, cmdmend.Errorf(resp.Error.Code, "%s", resp.Error.Message)
	}
	return &resp, nil
}
