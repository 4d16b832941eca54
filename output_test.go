package shtranslate

import "testing"

func TestParseOutput(t *testing.T) {
	tests := []struct {
		token string
		want  Output
		valid bool
	}{
		{"essl", OutputESSL, true},
		{"glsl", OutputGLSLCompat, true},
		{"glsl130", OutputGLSL130, true},
		{"glsl330", OutputGLSL330, true},
		{"glsl450", OutputGLSL450, true},
		{"spirv", OutputSPIRV, true},
		{"hlsl9", OutputHLSL9, true},
		{"hlsl11", OutputHLSL11, true},
		{"msl", OutputMSL, true},
		{"glsl999", 0, false}, // not in the version allow-list
		{"glsl100", 0, false},
		{"hlsl", 0, false},
		{"hlsl10", 0, false},
		{"wgsl", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseOutput(tt.token)
		if ok != tt.valid {
			t.Errorf("ParseOutput(%q) ok = %v, want %v", tt.token, ok, tt.valid)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseOutput(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestOutputBinary(t *testing.T) {
	if !OutputSPIRV.Binary() {
		t.Error("spirv should be binary")
	}
	for _, o := range []Output{OutputESSL, OutputGLSLCompat, OutputGLSL450, OutputHLSL9, OutputHLSL11, OutputMSL} {
		if o.Binary() {
			t.Errorf("%v should be text", o)
		}
	}
}

func TestOutputStringRoundTrip(t *testing.T) {
	outputs := []Output{
		OutputESSL, OutputGLSLCompat, OutputGLSL130, OutputGLSL140,
		OutputGLSL150, OutputGLSL330, OutputGLSL400, OutputGLSL410,
		OutputGLSL420, OutputGLSL430, OutputGLSL440, OutputGLSL450,
		OutputSPIRV, OutputHLSL9, OutputHLSL11, OutputMSL,
	}
	for _, o := range outputs {
		got, ok := ParseOutput(o.String())
		if !ok || got != o {
			t.Errorf("ParseOutput(%q) = %v, %v; want %v", o.String(), got, ok, o)
		}
	}
}
