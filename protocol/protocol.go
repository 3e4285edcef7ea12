// Package protocol defines the request/response types for cmdmend's
// session server IPC. Messages are JSON-encoded and sent over a Unix
// domain socket, one per line.
package protocol

// Version is the wire protocol version. Client and server must agree;
// mismatched frames are rejected rather than misinterpreted.
const Version = 1

// Operation names carried in Request.Op.
const (
	OpAsk  = "ask"
	OpFix  = "fix"
	OpPing = "ping"
	OpStop = "stop"
)

// MaxFrameSize bounds a single request or response line. Frames over
// the limit are rejected rather than buffered indefinitely.
const MaxFrameSize = 1 << 20

// Request is sent from the CLI client to the session server.
type Request struct {
	// Version is the wire protocol version of the sender.
	Version int `json:"version"`
	// Op is the operation: "ask", "fix", "ping" or "stop".
	Op string `json:"op"`
	// Question is the user's question (ask only).
	Question string `json:"question,omitempty"`
	// Command is the failed command line (fix only).
	Command string `json:"command,omitempty"`
	// ExitCode is the failed command's exit code (fix only).
	ExitCode int `json:"exit_code,omitempty"`
	// Stderr is the failed command's error output (fix only).
	Stderr string `json:"stderr,omitempty"`
}

// Fix carries a fix suggestion back to the client. When Parsed is
// false, Raw holds the unparsed model output.
type Fix struct {
	Command string `json:"command,omitempty"`
	Raw     string `json:"raw,omitempty"`
	Parsed  bool   `json:"parsed"`
}

// Error describes a server-side error returned to the client.
type Error struct {
	// Code is a machine-readable error code (cmdmend E* constants).
	Code string `json:"code"`
	// Message is a human-readable error description.
	Message string `json:"message"`
}

// Response is sent from the session server back to the CLI client.
type Response struct {
	// Version is the wire protocol version of the server.
	Version int `json:"version"`
	// Answer is the generated answer (ask).
	Answer string `json:"answer,omitempty"`
	// Fix is the fix suggestion (fix).
	Fix *Fix `json:"fix,omitempty"`
	// Error is set when the server cannot fulfill the request.
	Error *Error `json:"error,omitempty"`
}
