package shtranslate

// Spec identifies the shading-language specification the input source is
// validated against.
type Spec int

const (
	SpecGLES2 Spec = iota
	SpecGLES3
	SpecGLES31
	SpecGLES32
	SpecWebGL
	SpecWebGL2
	SpecWebGL3
	// SpecWebGLNoHighP is the WebGL 1.0 spec with high-precision fragment
	// shader support disabled. It validates as SpecWebGL; the precision
	// difference is carried in the resource limits.
	SpecWebGLNoHighP
)

var specNames = map[string]Spec{
	"gles2":  SpecGLES2,
	"gles3":  SpecGLES3,
	"gles31": SpecGLES31,
	"gles32": SpecGLES32,
	"webgl":  SpecWebGL,
	"webgl2": SpecWebGL2,
	"webgl3": SpecWebGL3,
	"webgln": SpecWebGLNoHighP,
}

// String returns the protocol token for the spec.
func (s Spec) String() string {
	for name, spec := range specNames {
		if spec == s {
			return name
		}
	}
	return "unknown"
}

// ParseSpec maps a protocol spec token to a Spec. The second result is false
// for unrecognized tokens.
func ParseSpec(token string) (Spec, bool) {
	s, ok := specNames[token]
	return s, ok
}

// isWebGL1 reports whether the spec is a WebGL 1.0 variant.
func (s Spec) isWebGL1() bool {
	return s == SpecWebGL || s == SpecWebGLNoHighP
}

// aboveLowestTier reports whether the spec is above the GLES2/WebGL 1.0
// baseline and therefore raises texture-unit and draw-buffer floors.
func (s Spec) aboveLowestTier() bool {
	return s != SpecGLES2 && !s.isWebGL1()
}
