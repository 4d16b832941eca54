package shtranslate

import (
	"encoding/base64"
	"testing"
)

func validParams() map[string]any {
	return map[string]any{
		"shader_code_base64": base64.StdEncoding.EncodeToString([]byte("void main(){}")),
		"shader_type":        "fragment",
	}
}

func TestParseRequestMinimal(t *testing.T) {
	cfg, err := ParseRequest(validParams())
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if cfg.Source != "void main(){}" {
		t.Errorf("Source = %q", cfg.Source)
	}
	if cfg.Stage != StageFragment {
		t.Errorf("Stage = %v", cfg.Stage)
	}
	if cfg.Spec != SpecGLES2 {
		t.Errorf("Spec = %v, want gles2 default", cfg.Spec)
	}
	if cfg.Output != OutputESSL {
		t.Errorf("Output = %v, want essl default", cfg.Output)
	}
	if cfg.Options != DefaultCompileOptions() {
		t.Errorf("Options = %+v, want defaults", cfg.Options)
	}
	if cfg.PrintActiveVariables {
		t.Error("PrintActiveVariables should default to false")
	}
}

func TestParseRequestEmptySourceIsValid(t *testing.T) {
	p := validParams()
	p["shader_code_base64"] = ""
	cfg, err := ParseRequest(p)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
}

func TestParseRequestSourceErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]any)
		message string
	}{
		{
			"missing source",
			func(p map[string]any) { delete(p, "shader_code_base64") },
			"Missing 'shader_code_base64' parameter.",
		},
		{
			"non-string source",
			func(p map[string]any) { p["shader_code_base64"] = 42.0 },
			"'shader_code_base64' parameter must be a string.",
		},
		{
			"bad base64",
			func(p map[string]any) { p["shader_code_base64"] = "!!not base64!!" },
			"Failed to decode 'shader_code_base64'.",
		},
		{
			"missing stage",
			func(p map[string]any) { delete(p, "shader_type") },
			"Missing 'shader_type' parameter.",
		},
		{
			"non-string stage",
			func(p map[string]any) { p["shader_type"] = true },
			"'shader_type' parameter must be a string.",
		},
		{
			"unknown stage echoes token",
			func(p map[string]any) { p["shader_type"] = "tesselation" },
			"Unsupported 'shader_type': tesselation",
		},
		{
			"non-string spec",
			func(p map[string]any) { p["spec"] = 3.0 },
			"'spec' parameter must be a string.",
		},
		{
			"unknown spec",
			func(p map[string]any) { p["spec"] = "gles4" },
			"Unsupported 'spec': gles4",
		},
		{
			"unknown output",
			func(p map[string]any) { p["output"] = "glsl999" },
			"Unsupported 'output': glsl999",
		},
		{
			"compile options wrong type",
			func(p map[string]any) { p["compile_options"] = "yes" },
			"'compile_options' must be an object.",
		},
		{
			"resources wrong type",
			func(p map[string]any) { p["resources"] = 1.0 },
			"'resources' must be an object.",
		},
		{
			"reflection flag wrong type",
			func(p map[string]any) { p["print_active_variables"] = "true" },
			"'print_active_variables' must be a boolean.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(p)
			_, err := ParseRequest(p)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Code != CodeInvalidParams {
				t.Errorf("Code = %d, want %d", err.Code, CodeInvalidParams)
			}
			if err.Message != tt.message {
				t.Errorf("Message = %q, want %q", err.Message, tt.message)
			}
		})
	}
}

func TestParseRequestCompileOptions(t *testing.T) {
	p := validParams()
	p["compile_options"] = map[string]any{
		"intermediate_tree": true,
		"object_code":       false,
	}
	cfg, err := ParseRequest(p)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if !cfg.Options.IntermediateTree {
		t.Error("intermediate_tree not applied")
	}
	if cfg.Options.ObjectCode {
		t.Error("object_code=false not applied")
	}
	// Unnamed flags keep their defaults.
	if !cfg.Options.InitializeUninitializedLocals {
		t.Error("initialize_uninitialized_locals default lost")
	}
}

func TestParseRequestResourceOverrides(t *testing.T) {
	p := validParams()
	p["spec"] = "gles3"
	p["resources"] = map[string]any{
		"MaxDrawBuffers":         2.0, // overrides the gles3 floor of 8
		"OES_EGL_image_external": 1.0,
		"UnknownKnob":            99.0, // silently ignored
	}
	cfg, err := ParseRequest(p)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if cfg.Resources.MaxDrawBuffers != 2 {
		t.Errorf("MaxDrawBuffers = %d, want explicit override 2", cfg.Resources.MaxDrawBuffers)
	}
	if cfg.Resources.OESEGLImageExternal != 1 {
		t.Errorf("OESEGLImageExternal = %d, want 1", cfg.Resources.OESEGLImageExternal)
	}
	// Floors not overridden stay raised.
	if cfg.Resources.MaxTextureImageUnits != 16 {
		t.Errorf("MaxTextureImageUnits = %d, want 16", cfg.Resources.MaxTextureImageUnits)
	}
}

func TestParseRequestWebGL3DrawBufferFloor(t *testing.T) {
	p := validParams()
	p["spec"] = "webgl3"
	cfg, err := ParseRequest(p)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if cfg.Resources.MaxDrawBuffers != 8 {
		t.Errorf("MaxDrawBuffers = %d, want 8", cfg.Resources.MaxDrawBuffers)
	}
}

func TestParseRequestResourceTypeErrors(t *testing.T) {
	p := validParams()
	p["resources"] = map[string]any{"MaxDrawBuffers": "many"}
	_, err := ParseRequest(p)
	if err == nil || err.Message != "resources.MaxDrawBuffers must be an integer." {
		t.Fatalf("err = %v, want typed message", err)
	}

	p = validParams()
	p["resources"] = map[string]any{"MaxDrawBuffers": 1.5}
	_, err = ParseRequest(p)
	if err == nil || err.Message != "resources.MaxDrawBuffers must be an integer." {
		t.Fatalf("err = %v, want rejection of fractional value", err)
	}
}

func TestParseRequestNameHashing(t *testing.T) {
	p := validParams()
	p["resources"] = map[string]any{"EnableNameHashing": true}
	cfg, err := ParseRequest(p)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if cfg.Resources.NameHash == nil {
		t.Fatal("NameHash not installed")
	}
	if got := cfg.Resources.NameHash([]byte("foobar")); got != 0x85944171f73967e8 {
		t.Errorf("NameHash(foobar) = %#x", got)
	}

	p = validParams()
	p["resources"] = map[string]any{"EnableNameHashing": "yes"}
	if _, err := ParseRequest(p); err == nil || err.Message != "resources.EnableNameHashing must be a boolean." {
		t.Fatalf("err = %v, want boolean type error", err)
	}
}

func TestParseRequestWebGLNoHighPForcesPrecisionOff(t *testing.T) {
	p := validParams()
	p["spec"] = "webgln"
	p["resources"] = map[string]any{"FragmentPrecisionHigh": 1.0}
	cfg, err := ParseRequest(p)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if cfg.Resources.FragmentPrecisionHigh != 0 {
		t.Errorf("FragmentPrecisionHigh = %d, want forced 0", cfg.Resources.FragmentPrecisionHigh)
	}
}

func TestParseRequestWebGLImpliesHighP(t *testing.T) {
	p := validParams()
	p["spec"] = "webgl"
	cfg, err := ParseRequest(p)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if cfg.Resources.FragmentPrecisionHigh != 1 {
		t.Errorf("FragmentPrecisionHigh = %d, want 1", cfg.Resources.FragmentPrecisionHigh)
	}
}

func TestParseRequestReflectionFlag(t *testing.T) {
	p := validParams()
	p["print_active_variables"] = true
	cfg, err := ParseRequest(p)
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if !cfg.PrintActiveVariables {
		t.Error("PrintActiveVariables not applied")
	}
}
