// Package rpc implements the service protocol: a line-delimited JSON-RPC 2.0
// loop over a byte stream, and a single-shot Session for embedding hosts.
//
// Each input line is a JSON object {method, params?, id?}. The recognized
// methods are "translate" and "shutdown". Every line produces exactly one
// response object carrying either a result or an error, never both, with the
// request id echoed back (null when absent or unparsable). Responses are
// written in strict receipt order; the loop reads request N+1 only after
// request N's response is fully written.
package rpc

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gogpu/shtranslate"
)

// shutdownAck is the literal result acknowledging a shutdown request.
const shutdownAck = "Shutdown acknowledged."

// maxLineBytes bounds a single request line. Shader sources travel base64
// encoded inside the line, so the bound is generous.
const maxLineBytes = 64 << 20

var nullID = json.RawMessage("null")

// response is the JSON-RPC 2.0 response shape. Result and Error are mutually
// exclusive by construction: handle sets exactly one.
type response struct {
	JSONRPC string             `json:"jsonrpc"`
	ID      json.RawMessage    `json:"id"`
	Result  any                `json:"result,omitempty"`
	Error   *shtranslate.Error `json:"error,omitempty"`
}

// envelope is the decoded request shell. Fields stay raw so that a missing
// field, a mistyped field, and a malformed line each get their own
// diagnostic.
type envelope struct {
	Method json.RawMessage `json:"method"`
	Params json.RawMessage `json:"params"`
	ID     json.RawMessage `json:"id"`
}

// Session processes one request per Invoke call against a shared backend.
// It is the embedding entry point: a non-native host brackets the backend
// lifecycle itself and calls Invoke once per round trip.
type Session struct {
	backend shtranslate.Backend
	buf     bytes.Buffer
}

// NewSession returns a session over the given backend.
func NewSession(b shtranslate.Backend) *Session {
	return &Session{backend: b}
}

// Invoke performs exactly one request/response round trip. The returned
// buffer is valid only until the next Invoke call.
func (s *Session) Invoke(request []byte) []byte {
	resp, _ := s.handle(request)
	s.buf.Reset()
	enc := json.NewEncoder(&s.buf)
	if err := enc.Encode(resp); err != nil {
		// Response values are built from marshalable types only; an
		// encode failure is a host bug surfaced as an internal error.
		s.buf.Reset()
		fallback := response{
			JSONRPC: "2.0",
			ID:      nullID,
			Error:   &shtranslate.Error{Code: shtranslate.CodeInternalError, Message: "Internal error: " + err.Error()},
		}
		_ = enc.Encode(fallback)
	}
	return bytes.TrimRight(s.buf.Bytes(), "\n")
}

// handle maps one request line to its response. The second result reports a
// shutdown request; the caller must stop reading input after acknowledging.
func (s *Session) handle(line []byte) (response, bool) {
	resp := response{JSONRPC: "2.0", ID: nullID}

	if !json.Valid(line) {
		resp.Error = &shtranslate.Error{
			Code:    shtranslate.CodeParseError,
			Message: "Parse error: Invalid JSON format.",
		}
		return resp, false
	}

	var env envelope
	if err := json.Unmarshal(line, &env); err != nil {
		// Valid JSON but not an object.
		resp.Error = &shtranslate.Error{
			Code:    shtranslate.CodeInvalidRequest,
			Message: "Invalid Request: 'method' is missing or not a string.",
		}
		return resp, false
	}
	if env.ID != nil {
		resp.ID = env.ID
	}

	var method string
	if env.Method == nil || json.Unmarshal(env.Method, &method) != nil {
		resp.Error = &shtranslate.Error{
			Code:    shtranslate.CodeInvalidRequest,
			Message: "Invalid Request: 'method' is missing or not a string.",
		}
		return resp, false
	}

	switch method {
	case "translate":
		// Assign through a typed check: a typed nil pointer stored in the
		// any-valued Result field would serialize as "result":null.
		if result, terr := s.translate(env.Params); terr != nil {
			resp.Error = terr
		} else {
			resp.Result = result
		}
	case "shutdown":
		resp.Result = shutdownAck
		return resp, true
	default:
		resp.Error = &shtranslate.Error{
			Code:    shtranslate.CodeMethodNotFound,
			Message: "Method not found: " + method,
		}
	}
	return resp, false
}

// translate validates the params object, builds the configuration, and runs
// one isolated translation (fresh compiler instance, destroyed on return).
func (s *Session) translate(rawParams json.RawMessage) (*shtranslate.Result, *shtranslate.Error) {
	var params map[string]any
	if rawParams == nil || json.Unmarshal(rawParams, &params) != nil || params == nil {
		return nil, &shtranslate.Error{
			Code:    shtranslate.CodeInvalidParams,
			Message: "Invalid Params: 'params' is missing or not an object for 'translate' method.",
		}
	}
	cfg, err := shtranslate.ParseRequest(params)
	if err != nil {
		return nil, err
	}
	return shtranslate.Translate(s.backend, cfg)
}

// Serve runs the read-eval-respond loop until the input stream ends or a
// shutdown request is acknowledged. Each line is fully processed and its
// response flushed before the next line is read. A failed request never
// terminates the loop; only a write failure or input error does.
func Serve(r io.Reader, w io.Writer, b shtranslate.Backend) error {
	session := NewSession(b)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		resp, shutdown := session.handle(scanner.Bytes())
		if err := writeResponse(w, resp); err != nil {
			return err
		}
		if shutdown {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading request stream: %w", err)
	}
	return nil
}

func writeResponse(w io.Writer, resp response) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
