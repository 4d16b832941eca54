// Package shtranslate maps loosely-typed shader translation requests onto a
// precise compiler configuration, drives an external shader-compiler backend
// with it, and serializes the backend's results and reflection data into a
// stable, language-neutral shape.
//
// The package is the shared core behind three front ends: a line-delimited
// JSON-RPC loop, a batch command line, and an embedding session API (see the
// rpc package and cmd/shtranslate). All three decode their transport into a
// Config, call Translate (or Pool.Translate in batch mode), and encode the
// Result or Error back out.
//
// The actual lexing, parsing, and code generation of shaders happens in the
// Backend, an opaque collaborator. The production backend is the ANGLE
// translator compiled to WebAssembly, hosted by the angle package; tests use
// the in-memory backend in backendtest.
package shtranslate

import "encoding/base64"

// Result is a successful translation: the backend's info log, the object
// code in exactly one of its two forms (text, or base64-encoded binary,
// selected by the output target), and the reflection tree when requested.
type Result struct {
	InfoLog          string           `json:"info_log"`
	ObjectCode       *string          `json:"object_code,omitempty"`
	ObjectCodeBase64 *string          `json:"object_code_base64,omitempty"`
	ActiveVariables  *ActiveVariables `json:"active_variables,omitempty"`
}

// Translate runs one translation against a fresh compiler instance and
// destroys the instance before returning, on every path. This is the service
// front end's mode: nothing survives between requests, so a bad
// configuration in one request cannot corrupt another.
func Translate(b Backend, cfg *Config) (*Result, *Error) {
	c, err := constructCompiler(b, cfg.Stage, cfg.Spec, cfg.Output, &cfg.Resources)
	if err != nil {
		return nil, err
	}
	defer c.Destroy()
	return translateWith(c, cfg)
}

// translateWith compiles through an already-constructed instance and
// extracts the result. Ownership of the instance stays with the caller.
func translateWith(c Compiler, cfg *Config) (*Result, *Error) {
	compiled := c.Compile(cfg.Source, cfg.Options)
	infoLog := c.InfoLog()

	if !compiled {
		return nil, &Error{
			Code:    CodeCompileFailure,
			Message: "Shader compilation failed.",
			Data:    map[string]string{"info_log": infoLog},
		}
	}

	result := &Result{InfoLog: infoLog}
	if cfg.Options.ObjectCode {
		if cfg.Output.Binary() {
			encoded := base64.StdEncoding.EncodeToString(c.ObjectBinary())
			result.ObjectCodeBase64 = &encoded
		} else {
			code := c.ObjectCode()
			result.ObjectCode = &code
		}
	}
	if cfg.PrintActiveVariables {
		result.ActiveVariables = CollectActiveVariables(c)
	}
	return result, nil
}
