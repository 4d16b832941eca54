package shtranslate

// BuiltInResources is the fixed-shape record of capability limits a compiler
// instance is constructed with. Extension fields use 0/1 integers, matching
// the backend's convention and the protocol override keys. JSON tags are the
// canonical override key names.
type BuiltInResources struct {
	MaxVertexAttribs             int `json:"MaxVertexAttribs"`
	MaxVertexUniformVectors      int `json:"MaxVertexUniformVectors"`
	MaxVaryingVectors            int `json:"MaxVaryingVectors"`
	MaxVertexTextureImageUnits   int `json:"MaxVertexTextureImageUnits"`
	MaxCombinedTextureImageUnits int `json:"MaxCombinedTextureImageUnits"`
	MaxTextureImageUnits         int `json:"MaxTextureImageUnits"`
	MaxFragmentUniformVectors    int `json:"MaxFragmentUniformVectors"`
	MaxDrawBuffers               int `json:"MaxDrawBuffers"`
	MaxDualSourceDrawBuffers     int `json:"MaxDualSourceDrawBuffers"`
	FragmentPrecisionHigh        int `json:"FragmentPrecisionHigh"`

	OESStandardDerivatives    int `json:"OES_standard_derivatives"`
	OESEGLImageExternal       int `json:"OES_EGL_image_external"`
	ARBTextureRectangle       int `json:"ARB_texture_rectangle"`
	EXTBlendFuncExtended      int `json:"EXT_blend_func_extended"`
	EXTDrawBuffers            int `json:"EXT_draw_buffers"`
	EXTFragDepth              int `json:"EXT_frag_depth"`
	EXTShaderTextureLOD       int `json:"EXT_shader_texture_lod"`
	EXTShaderFramebufferFetch int `json:"EXT_shader_framebuffer_fetch"`
	NVShaderFramebufferFetch  int `json:"NV_shader_framebuffer_fetch"`
	ARMShaderFramebufferFetch int `json:"ARM_shader_framebuffer_fetch"`
	OVRMultiview              int `json:"OVR_multiview"`
	OVRMultiview2             int `json:"OVR_multiview2"`
	EXTYUVTarget              int `json:"EXT_YUV_target"`
	OESSampleVariables        int `json:"OES_sample_variables"`
	EXTGeometryShader         int `json:"EXT_geometry_shader"`
	EXTTessellationShader     int `json:"EXT_tessellation_shader"`
	ANGLETextureMultisample   int `json:"ANGLE_texture_multisample"`
	APPLEClipDistance         int `json:"APPLE_clip_distance"`

	// NameHash, when non-nil, is applied by the backend to obfuscate and
	// deduplicate mapped names. When nil the backend applies its default
	// obfuscation prefix instead.
	NameHash func([]byte) uint64 `json:"-"`
}

// DefaultResources returns the canonical baseline limits.
func DefaultResources() BuiltInResources {
	return BuiltInResources{
		MaxVertexAttribs:             8,
		MaxVertexUniformVectors:      128,
		MaxVaryingVectors:            8,
		MaxVertexTextureImageUnits:   0,
		MaxCombinedTextureImageUnits: 8,
		MaxTextureImageUnits:         8,
		MaxFragmentUniformVectors:    16,
		MaxDrawBuffers:               1,
		MaxDualSourceDrawBuffers:     1,
		EXTGeometryShader:            1,
	}
}

// ApplySpecFloors raises limits to the floor the given spec guarantees.
// Callers apply explicit overrides afterwards, so an override always wins.
func (r *BuiltInResources) ApplySpecFloors(spec Spec) {
	if spec.aboveLowestTier() {
		r.MaxVertexTextureImageUnits = 16
		r.MaxCombinedTextureImageUnits = 32
		r.MaxTextureImageUnits = 16
		r.MaxDrawBuffers = 4
	}
	switch spec {
	case SpecGLES3, SpecGLES31, SpecGLES32, SpecWebGL2, SpecWebGL3:
		r.MaxDrawBuffers = 8
	case SpecWebGL:
		// WebGL 1.0 implies high-precision fragment support unless the
		// caller set it explicitly or asked for the no-highp variant.
		r.FragmentPrecisionHigh = 1
	}
}

// resourceSetters maps override key names to typed field setters. Every
// value crosses the protocol as an integer (extension toggles use 0/1).
var resourceSetters = map[string]func(*BuiltInResources, int){
	"MaxVertexAttribs":             func(r *BuiltInResources, v int) { r.MaxVertexAttribs = v },
	"MaxVertexUniformVectors":      func(r *BuiltInResources, v int) { r.MaxVertexUniformVectors = v },
	"MaxVaryingVectors":            func(r *BuiltInResources, v int) { r.MaxVaryingVectors = v },
	"MaxVertexTextureImageUnits":   func(r *BuiltInResources, v int) { r.MaxVertexTextureImageUnits = v },
	"MaxCombinedTextureImageUnits": func(r *BuiltInResources, v int) { r.MaxCombinedTextureImageUnits = v },
	"MaxTextureImageUnits":         func(r *BuiltInResources, v int) { r.MaxTextureImageUnits = v },
	"MaxFragmentUniformVectors":    func(r *BuiltInResources, v int) { r.MaxFragmentUniformVectors = v },
	"MaxDrawBuffers":               func(r *BuiltInResources, v int) { r.MaxDrawBuffers = v },
	"MaxDualSourceDrawBuffers":     func(r *BuiltInResources, v int) { r.MaxDualSourceDrawBuffers = v },
	"FragmentPrecisionHigh":        func(r *BuiltInResources, v int) { r.FragmentPrecisionHigh = v },
	"OES_standard_derivatives":     func(r *BuiltInResources, v int) { r.OESStandardDerivatives = v },
	"OES_EGL_image_external":       func(r *BuiltInResources, v int) { r.OESEGLImageExternal = v },
	"ARB_texture_rectangle":        func(r *BuiltInResources, v int) { r.ARBTextureRectangle = v },
	"EXT_blend_func_extended":      func(r *BuiltInResources, v int) { r.EXTBlendFuncExtended = v },
	"EXT_draw_buffers":             func(r *BuiltInResources, v int) { r.EXTDrawBuffers = v },
	"EXT_frag_depth":               func(r *BuiltInResources, v int) { r.EXTFragDepth = v },
	"EXT_shader_texture_lod":       func(r *BuiltInResources, v int) { r.EXTShaderTextureLOD = v },
	"EXT_shader_framebuffer_fetch": func(r *BuiltInResources, v int) { r.EXTShaderFramebufferFetch = v },
	"NV_shader_framebuffer_fetch":  func(r *BuiltInResources, v int) { r.NVShaderFramebufferFetch = v },
	"ARM_shader_framebuffer_fetch": func(r *BuiltInResources, v int) { r.ARMShaderFramebufferFetch = v },
	"OVR_multiview":                func(r *BuiltInResources, v int) { r.OVRMultiview = v },
	"OVR_multiview2":               func(r *BuiltInResources, v int) { r.OVRMultiview2 = v },
	"EXT_YUV_target":               func(r *BuiltInResources, v int) { r.EXTYUVTarget = v },
	"OES_sample_variables":         func(r *BuiltInResources, v int) { r.OESSampleVariables = v },
	"EXT_geometry_shader":          func(r *BuiltInResources, v int) { r.EXTGeometryShader = v },
	"EXT_tessellation_shader":      func(r *BuiltInResources, v int) { r.EXTTessellationShader = v },
	"ANGLE_texture_multisample":    func(r *BuiltInResources, v int) { r.ANGLETextureMultisample = v },
	"APPLE_clip_distance":          func(r *BuiltInResources, v int) { r.APPLEClipDistance = v },
}

// FNV-1a 64-bit parameters.
const (
	fnvOffsetBasis uint64 = 14695981039346656037
	fnvPrime       uint64 = 1099511628211
)

// FNVHash64 is the stable content-derived name hash installed when name
// hashing is enabled (FNV-1a, 64-bit).
func FNVHash64(data []byte) uint64 {
	hash := fnvOffsetBasis
	for _, b := range data {
		hash ^= uint64(b)
		hash *= fnvPrime
	}
	return hash
}
