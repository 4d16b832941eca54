package shtranslate

// Error codes. Transport and request-shape failures use the JSON-RPC 2.0
// reserved range; backend failures use the small positive values that double
// as process exit codes in batch mode.
const (
	// CodeParseError indicates the request line was not valid JSON.
	CodeParseError = -32700
	// CodeInvalidRequest indicates the request envelope was malformed
	// (missing or non-string method).
	CodeInvalidRequest = -32600
	// CodeMethodNotFound indicates an unrecognized method name.
	CodeMethodNotFound = -32601
	// CodeInvalidParams indicates a missing, mistyped, or unsupported
	// request parameter. The message names the offending field.
	CodeInvalidParams = -32602
	// CodeInternalError indicates an unexpected host-side failure.
	CodeInternalError = -32603

	// CodeUsage is the batch exit code for a command-line usage error.
	CodeUsage = 1
	// CodeCompileFailure indicates the backend rejected the shader. The
	// error data carries the backend's info log verbatim.
	CodeCompileFailure = 2
	// CodeConstructFailure indicates the backend could not construct a
	// compiler instance for the requested configuration.
	CodeConstructFailure = 3
)

// Error is a protocol-level failure: a stable numeric code, a canonical
// message, and optional structured data (for compile failures, the backend's
// info log). It never accompanies a success payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// invalidParams builds a field-specific parameter validation error.
func invalidParams(message string) *Error {
	return &Error{Code: CodeInvalidParams, Message: message}
}
