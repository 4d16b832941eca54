package angle

import (
	"encoding/json"
	"fmt"

	"github.com/gogpu/shtranslate"
)

// compiler is one shim-side compiler instance, identified by its handle.
type compiler struct {
	rt     *Runtime
	handle uint32

	// vars caches the decoded reflection tree for the last compile. Every
	// accessor reads from the same shim round trip.
	vars    *shtranslate.ActiveVariables
	varsErr error
}

var _ shtranslate.Compiler = (*compiler)(nil)

// Compile implements shtranslate.Compiler. A trap or memory fault inside the
// shim is reported as a failed compile; the shim's info log (when readable)
// carries the detail.
func (c *compiler) Compile(source string, opts shtranslate.CompileOptions) bool {
	c.vars, c.varsErr = nil, nil

	ptr, err := c.rt.writeBytes([]byte(source))
	if err != nil {
		return false
	}
	defer c.rt.freeBytes(ptr)

	results, err := c.rt.compile.Call(c.rt.ctx,
		uint64(c.handle), uint64(ptr), uint64(len(source)), packOptions(opts))
	if err != nil {
		return false
	}
	return results[0] != 0
}

func (c *compiler) InfoLog() string {
	data, err := c.rt.readRegion(c.rt.infoLog, fnGetInfoLog, c.handle)
	if err != nil {
		return fmt.Sprintf("error reading info log: %v", err)
	}
	return string(data)
}

func (c *compiler) ObjectCode() string {
	data, err := c.rt.readRegion(c.rt.objectCode, fnGetObjectCode, c.handle)
	if err != nil {
		return ""
	}
	return string(data)
}

func (c *compiler) ObjectBinary() []byte {
	data, err := c.rt.readRegion(c.rt.objectBinary, fnGetObjectBinary, c.handle)
	if err != nil {
		return nil
	}
	return data
}

// activeVariables fetches and decodes the shim's reflection JSON once per
// compile.
func (c *compiler) activeVariables() *shtranslate.ActiveVariables {
	if c.vars != nil || c.varsErr != nil {
		return c.vars
	}
	data, err := c.rt.readRegion(c.rt.activeVars, fnGetActiveVariables, c.handle)
	if err != nil {
		c.varsErr = err
		return nil
	}
	if len(data) == 0 {
		c.varsErr = fmt.Errorf("%s returned no data", fnGetActiveVariables)
		return nil
	}
	var vars shtranslate.ActiveVariables
	if err := json.Unmarshal(data, &vars); err != nil {
		c.varsErr = fmt.Errorf("decoding reflection data: %w", err)
		return nil
	}
	c.vars = &vars
	return c.vars
}

func (c *compiler) Attributes() []shtranslate.ShaderVariable {
	if v := c.activeVariables(); v != nil {
		return v.Attributes
	}
	return nil
}

func (c *compiler) InputVaryings() []shtranslate.ShaderVariable {
	if v := c.activeVariables(); v != nil {
		return v.InputVaryings
	}
	return nil
}

func (c *compiler) OutputVaryings() []shtranslate.ShaderVariable {
	if v := c.activeVariables(); v != nil {
		return v.OutputVaryings
	}
	return nil
}

func (c *compiler) OutputVariables() []shtranslate.ShaderVariable {
	if v := c.activeVariables(); v != nil {
		return v.OutputVariables
	}
	return nil
}

func (c *compiler) Uniforms() []shtranslate.ShaderVariable {
	if v := c.activeVariables(); v != nil {
		return v.Uniforms
	}
	return nil
}

func (c *compiler) UniformBlocks() []shtranslate.InterfaceBlock {
	if v := c.activeVariables(); v != nil {
		return v.UniformBlocks
	}
	return nil
}

func (c *compiler) ShaderStorageBlocks() []shtranslate.InterfaceBlock {
	if v := c.activeVariables(); v != nil {
		return v.ShaderStorageBufferBlocks
	}
	return nil
}

func (c *compiler) InterfaceBlocks() []shtranslate.InterfaceBlock {
	if v := c.activeVariables(); v != nil {
		return v.GenericInterfaceBlocks
	}
	return nil
}

// Destroy implements shtranslate.Compiler.
func (c *compiler) Destroy() {
	_, _ = c.rt.destruct.Call(c.rt.ctx, uint64(c.handle))
	c.handle = 0
}
