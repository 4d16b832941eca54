package angle

import "github.com/gogpu/shtranslate"

// Shim export names.
const (
	fnInitialize         = "sh_initialize"
	fnFinalize           = "sh_finalize"
	fnConstructCompiler  = "sh_construct_compiler"
	fnCompile            = "sh_compile"
	fnDestruct           = "sh_destruct"
	fnGetInfoLog         = "sh_get_info_log"
	fnGetObjectCode      = "sh_get_object_code"
	fnGetObjectBinary    = "sh_get_object_binary"
	fnGetActiveVariables = "sh_get_active_variables"
	fnMalloc             = "malloc"
	fnFree               = "free"
)

// Shader stages cross the boundary as the GL shader type enums the ShaderLang
// API expects.
const (
	glFragmentShader       = 0x8B30
	glVertexShader         = 0x8B31
	glComputeShader        = 0x91B9
	glGeometryShaderEXT    = 0x8DD9
	glTessControlShaderEXT = 0x8E88
	glTessEvalShaderEXT    = 0x8E87
)

var stageEnums = map[shtranslate.Stage]uint32{
	shtranslate.StageVertex:      glVertexShader,
	shtranslate.StageFragment:    glFragmentShader,
	shtranslate.StageCompute:     glComputeShader,
	shtranslate.StageGeometry:    glGeometryShaderEXT,
	shtranslate.StageTessControl: glTessControlShaderEXT,
	shtranslate.StageTessEval:    glTessEvalShaderEXT,
}

// Spec and output selectors are shim-local enums, kept in lockstep with the
// C shim's tables. webgln shares the WebGL 1.0 selector; its precision
// difference is already folded into the resource limits.
var specEnums = map[shtranslate.Spec]uint32{
	shtranslate.SpecGLES2:        0,
	shtranslate.SpecGLES3:        1,
	shtranslate.SpecGLES31:       2,
	shtranslate.SpecGLES32:       3,
	shtranslate.SpecWebGL:        4,
	shtranslate.SpecWebGLNoHighP: 4,
	shtranslate.SpecWebGL2:       5,
	shtranslate.SpecWebGL3:       6,
}

var outputEnums = map[shtranslate.Output]uint32{
	shtranslate.OutputESSL:       0,
	shtranslate.OutputGLSLCompat: 1,
	shtranslate.OutputGLSL130:    130,
	shtranslate.OutputGLSL140:    140,
	shtranslate.OutputGLSL150:    150,
	shtranslate.OutputGLSL330:    330,
	shtranslate.OutputGLSL400:    400,
	shtranslate.OutputGLSL410:    410,
	shtranslate.OutputGLSL420:    420,
	shtranslate.OutputGLSL430:    430,
	shtranslate.OutputGLSL440:    440,
	shtranslate.OutputGLSL450:    450,
	shtranslate.OutputSPIRV:      2,
	shtranslate.OutputHLSL9:      3,
	shtranslate.OutputHLSL11:     4,
	shtranslate.OutputMSL:        5,
}

// Compile option bits, matching the shim's mapping onto ShCompileOptions.
const (
	optIntermediateTree uint64 = 1 << iota
	optObjectCode
	optInitializeUninitializedLocals
	optInitializeBuiltinsForInstancedMultiview
	optSelectViewInNvGLSLVertexShader
)

func packOptions(o shtranslate.CompileOptions) uint64 {
	var bits uint64
	if o.IntermediateTree {
		bits |= optIntermediateTree
	}
	if o.ObjectCode {
		bits |= optObjectCode
	}
	if o.InitializeUninitializedLocals {
		bits |= optInitializeUninitializedLocals
	}
	if o.InitializeBuiltinsForInstancedMultiview {
		bits |= optInitializeBuiltinsForInstancedMultiview
	}
	if o.SelectViewInNvGLSLVertexShader {
		bits |= optSelectViewInNvGLSLVertexShader
	}
	return bits
}

// resourcesWire is the JSON shape of a resource record crossing into the
// shim. The name-hash function cannot cross the boundary; the shim applies
// the same FNV-1a hash itself when HashNames is set.
type resourcesWire struct {
	shtranslate.BuiltInResources
	HashNames bool `json:"HashNames"`
}

// unpackRegion splits a shim getter result into pointer and length.
func unpackRegion(packed uint64) (ptr, size uint32) {
	return uint32(packed >> 32), uint32(packed)
}
