package shtranslate

import "strings"

// Output identifies the dialect or format the translated shader is emitted
// in. All outputs are text except OutputSPIRV, which is a binary blob.
type Output int

const (
	OutputESSL Output = iota
	OutputGLSLCompat
	OutputGLSL130
	OutputGLSL140
	OutputGLSL150
	OutputGLSL330
	OutputGLSL400
	OutputGLSL410
	OutputGLSL420
	OutputGLSL430
	OutputGLSL440
	OutputGLSL450
	OutputSPIRV
	OutputHLSL9
	OutputHLSL11
	OutputMSL
)

// glslVersions is the allow-list of desktop GLSL output versions. The empty
// suffix selects the compatibility profile.
var glslVersions = map[string]Output{
	"":    OutputGLSLCompat,
	"130": OutputGLSL130,
	"140": OutputGLSL140,
	"150": OutputGLSL150,
	"330": OutputGLSL330,
	"400": OutputGLSL400,
	"410": OutputGLSL410,
	"420": OutputGLSL420,
	"430": OutputGLSL430,
	"440": OutputGLSL440,
	"450": OutputGLSL450,
}

// String returns the protocol token for the output target.
func (o Output) String() string {
	switch o {
	case OutputESSL:
		return "essl"
	case OutputGLSLCompat:
		return "glsl"
	case OutputSPIRV:
		return "spirv"
	case OutputHLSL9:
		return "hlsl9"
	case OutputHLSL11:
		return "hlsl11"
	case OutputMSL:
		return "msl"
	}
	for suffix, out := range glslVersions {
		if out == o {
			return "glsl" + suffix
		}
	}
	return "unknown"
}

// Binary reports whether the output target produces a binary blob rather
// than text.
func (o Output) Binary() bool {
	return o == OutputSPIRV
}

// ParseOutput parses an output token of the form <family><version-suffix>:
// "essl", "glsl" or "glsl<NNN>" with NNN from the version allow-list,
// "spirv", "hlsl9", "hlsl11", or "msl". The second result is false for any
// unrecognized family or out-of-list version.
func ParseOutput(token string) (Output, bool) {
	switch {
	case token == "essl":
		return OutputESSL, true
	case strings.HasPrefix(token, "glsl"):
		out, ok := glslVersions[token[len("glsl"):]]
		return out, ok
	case token == "spirv":
		return OutputSPIRV, true
	case strings.HasPrefix(token, "hlsl"):
		switch token[len("hlsl"):] {
		case "9":
			return OutputHLSL9, true
		case "11":
			return OutputHLSL11, true
		}
		return 0, false
	case token == "msl":
		return OutputMSL, true
	}
	return 0, false
}
