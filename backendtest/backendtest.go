// Package backendtest provides an in-memory shader-compiler backend for
// testing the translation pipeline without a real translator artifact.
//
// The zero value of Backend constructs compilers that succeed and report a
// fixed piece of object code. Tests script other behavior through the Setup
// hook or the exported fields of Compiler.
package backendtest

import (
	"errors"

	"github.com/gogpu/shtranslate"
)

// ErrConstruct is the error returned by ConstructCompiler when FailConstruct
// is set.
var ErrConstruct = errors.New("backendtest: construction refused")

// Construction records the parameters one compiler instance was built with.
type Construction struct {
	Stage     shtranslate.Stage
	Spec      shtranslate.Spec
	Output    shtranslate.Output
	Resources shtranslate.BuiltInResources
}

// Backend is a scriptable shtranslate.Backend.
type Backend struct {
	// FailConstruct makes every construction attempt fail.
	FailConstruct bool
	// Setup, when non-nil, customizes each newly constructed compiler.
	Setup func(c *Compiler)

	// Constructions records every successful construction in order.
	Constructions []Construction
	// Destroyed counts Destroy calls across all instances.
	Destroyed int
}

// ConstructCompiler implements shtranslate.Backend.
func (b *Backend) ConstructCompiler(stage shtranslate.Stage, spec shtranslate.Spec, output shtranslate.Output, resources *shtranslate.BuiltInResources) (shtranslate.Compiler, error) {
	if b.FailConstruct {
		return nil, ErrConstruct
	}
	c := &Compiler{
		backend: b,
		Params: Construction{
			Stage:     stage,
			Spec:      spec,
			Output:    output,
			Resources: *resources,
		},
		Ok:   true,
		Code: "// translated\n",
	}
	if b.Setup != nil {
		b.Setup(c)
	}
	b.Constructions = append(b.Constructions, c.Params)
	return c, nil
}

// Compiler is a scriptable shtranslate.Compiler. Fields may be set before
// the compile (via Backend.Setup) to control its outcome.
type Compiler struct {
	backend *Backend

	// Params are the construction parameters, resources frozen by value.
	Params Construction

	// Ok is the compile result to report.
	Ok bool
	// Log is the info log to report.
	Log string
	// Code and Binary are the object code to report.
	Code   string
	Binary []byte

	// Reflection fixtures.
	Attribs     []shtranslate.ShaderVariable
	InVaryings  []shtranslate.ShaderVariable
	OutVaryings []shtranslate.ShaderVariable
	Outputs     []shtranslate.ShaderVariable
	Unis        []shtranslate.ShaderVariable
	UBlocks     []shtranslate.InterfaceBlock
	SSBlocks    []shtranslate.InterfaceBlock
	IBlocks     []shtranslate.InterfaceBlock

	// LastSource and LastOptions record the most recent compile call.
	LastSource  string
	LastOptions shtranslate.CompileOptions
	// Compiles counts compile calls on this instance.
	Compiles int
	// DestroyedInstance reports whether Destroy has been called.
	DestroyedInstance bool
}

// Compile implements shtranslate.Compiler.
func (c *Compiler) Compile(source string, opts shtranslate.CompileOptions) bool {
	c.LastSource = source
	c.LastOptions = opts
	c.Compiles++
	return c.Ok
}

func (c *Compiler) InfoLog() string      { return c.Log }
func (c *Compiler) ObjectCode() string   { return c.Code }
func (c *Compiler) ObjectBinary() []byte { return c.Binary }

func (c *Compiler) Attributes() []shtranslate.ShaderVariable      { return c.Attribs }
func (c *Compiler) InputVaryings() []shtranslate.ShaderVariable   { return c.InVaryings }
func (c *Compiler) OutputVaryings() []shtranslate.ShaderVariable  { return c.OutVaryings }
func (c *Compiler) OutputVariables() []shtranslate.ShaderVariable { return c.Outputs }
func (c *Compiler) Uniforms() []shtranslate.ShaderVariable        { return c.Unis }

func (c *Compiler) UniformBlocks() []shtranslate.InterfaceBlock       { return c.UBlocks }
func (c *Compiler) ShaderStorageBlocks() []shtranslate.InterfaceBlock { return c.SSBlocks }
func (c *Compiler) InterfaceBlocks() []shtranslate.InterfaceBlock     { return c.IBlocks }

// Destroy implements shtranslate.Compiler.
func (c *Compiler) Destroy() {
	c.DestroyedInstance = true
	c.backend.Destroyed++
}
