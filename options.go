package shtranslate

// CompileOptions are the per-compile feature flags passed to the backend.
// The zero value is the batch front end's default (everything off until a
// flag enables it); the service front end starts from DefaultCompileOptions.
type CompileOptions struct {
	// IntermediateTree asks the backend to retain its intermediate
	// representation for diagnostics.
	IntermediateTree bool
	// ObjectCode asks the backend to emit translated object code.
	ObjectCode bool
	// InitializeUninitializedLocals auto-initializes uninitialized local
	// variables in the translated output.
	InitializeUninitializedLocals bool
	// InitializeBuiltinsForInstancedMultiview and
	// SelectViewInNvGLSLVertexShader control multiview translation.
	InitializeBuiltinsForInstancedMultiview bool
	SelectViewInNvGLSLVertexShader          bool
}

// DefaultCompileOptions returns the service front end's defaults: object
// code emission and uninitialized-local auto-init on, multiview behavior off.
func DefaultCompileOptions() CompileOptions {
	return CompileOptions{
		ObjectCode:                    true,
		InitializeUninitializedLocals: true,
	}
}
