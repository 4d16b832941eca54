package shtranslate

// Backend is the external shader-compiler library. It is an opaque
// collaborator: this package configures it, drives it, and serializes what
// it reports, but never looks inside the translation itself.
type Backend interface {
	// ConstructCompiler creates a compiler instance for one shader stage.
	// Resource limits are frozen at construction: later compiles on the
	// returned instance cannot change them.
	ConstructCompiler(stage Stage, spec Spec, output Output, resources *BuiltInResources) (Compiler, error)
}

// Compiler is a single configured compiler instance. Instances are not safe
// for concurrent use; the process model is strictly request-at-a-time.
type Compiler interface {
	// Compile translates the given source. It reports success; the info
	// log is populated regardless of outcome.
	Compile(source string, opts CompileOptions) bool

	// InfoLog returns the backend's diagnostic text for the last compile.
	InfoLog() string
	// ObjectCode returns translated text for text output targets.
	ObjectCode() string
	// ObjectBinary returns the translated blob for binary output targets.
	ObjectBinary() []byte

	// Reflection accessors for the last successful compile. A category
	// with no data returns an empty (possibly nil) slice.
	Attributes() []ShaderVariable
	InputVaryings() []ShaderVariable
	OutputVaryings() []ShaderVariable
	OutputVariables() []ShaderVariable
	Uniforms() []ShaderVariable
	UniformBlocks() []InterfaceBlock
	ShaderStorageBlocks() []InterfaceBlock
	InterfaceBlocks() []InterfaceBlock

	// Destroy releases the instance. The instance must not be used after.
	Destroy()
}
