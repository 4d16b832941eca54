package shtranslate

import "testing"

func TestDefaultResources(t *testing.T) {
	r := DefaultResources()
	if r.MaxVertexAttribs != 8 {
		t.Errorf("MaxVertexAttribs = %d, want 8", r.MaxVertexAttribs)
	}
	if r.MaxVertexUniformVectors != 128 {
		t.Errorf("MaxVertexUniformVectors = %d, want 128", r.MaxVertexUniformVectors)
	}
	if r.MaxFragmentUniformVectors != 16 {
		t.Errorf("MaxFragmentUniformVectors = %d, want 16", r.MaxFragmentUniformVectors)
	}
	if r.MaxDrawBuffers != 1 {
		t.Errorf("MaxDrawBuffers = %d, want 1", r.MaxDrawBuffers)
	}
	if r.EXTGeometryShader != 1 {
		t.Errorf("EXTGeometryShader = %d, want 1", r.EXTGeometryShader)
	}
	if r.FragmentPrecisionHigh != 0 {
		t.Errorf("FragmentPrecisionHigh = %d, want 0", r.FragmentPrecisionHigh)
	}
	if r.NameHash != nil {
		t.Error("NameHash should default to nil")
	}
}

func TestApplySpecFloors(t *testing.T) {
	t.Run("gles2 unchanged", func(t *testing.T) {
		r := DefaultResources()
		r.ApplySpecFloors(SpecGLES2)
		want := DefaultResources()
		if r.MaxDrawBuffers != want.MaxDrawBuffers ||
			r.MaxTextureImageUnits != want.MaxTextureImageUnits ||
			r.MaxCombinedTextureImageUnits != want.MaxCombinedTextureImageUnits ||
			r.MaxVertexTextureImageUnits != want.MaxVertexTextureImageUnits ||
			r.FragmentPrecisionHigh != want.FragmentPrecisionHigh {
			t.Errorf("gles2 floors changed resources: %+v", r)
		}
	})

	t.Run("gles3 raises limits", func(t *testing.T) {
		r := DefaultResources()
		r.ApplySpecFloors(SpecGLES3)
		if r.MaxVertexTextureImageUnits != 16 {
			t.Errorf("MaxVertexTextureImageUnits = %d, want 16", r.MaxVertexTextureImageUnits)
		}
		if r.MaxCombinedTextureImageUnits != 32 {
			t.Errorf("MaxCombinedTextureImageUnits = %d, want 32", r.MaxCombinedTextureImageUnits)
		}
		if r.MaxTextureImageUnits != 16 {
			t.Errorf("MaxTextureImageUnits = %d, want 16", r.MaxTextureImageUnits)
		}
		if r.MaxDrawBuffers != 8 {
			t.Errorf("MaxDrawBuffers = %d, want 8", r.MaxDrawBuffers)
		}
	})

	t.Run("webgl implies highp", func(t *testing.T) {
		r := DefaultResources()
		r.ApplySpecFloors(SpecWebGL)
		if r.FragmentPrecisionHigh != 1 {
			t.Errorf("FragmentPrecisionHigh = %d, want 1", r.FragmentPrecisionHigh)
		}
		if r.MaxDrawBuffers != 1 {
			t.Errorf("MaxDrawBuffers = %d, want 1 (webgl is lowest tier)", r.MaxDrawBuffers)
		}
	})

	t.Run("webgl3 raises draw buffers", func(t *testing.T) {
		r := DefaultResources()
		r.ApplySpecFloors(SpecWebGL3)
		if r.MaxDrawBuffers != 8 {
			t.Errorf("MaxDrawBuffers = %d, want 8", r.MaxDrawBuffers)
		}
		if r.MaxTextureImageUnits != 16 {
			t.Errorf("MaxTextureImageUnits = %d, want 16", r.MaxTextureImageUnits)
		}
	})

	t.Run("webgln leaves highp alone", func(t *testing.T) {
		// The no-highp variant is enforced after overrides, not here.
		r := DefaultResources()
		r.ApplySpecFloors(SpecWebGLNoHighP)
		if r.FragmentPrecisionHigh != 0 {
			t.Errorf("FragmentPrecisionHigh = %d, want 0", r.FragmentPrecisionHigh)
		}
	})
}

func TestResourceSettersCoverOverrideKeys(t *testing.T) {
	// Every setter must actually set its field: apply a distinctive value
	// through the setter and check the serialized record carries it.
	for key, set := range resourceSetters {
		var r BuiltInResources
		set(&r, 7)
		sum := r.MaxVertexAttribs + r.MaxVertexUniformVectors + r.MaxVaryingVectors +
			r.MaxVertexTextureImageUnits + r.MaxCombinedTextureImageUnits +
			r.MaxTextureImageUnits + r.MaxFragmentUniformVectors + r.MaxDrawBuffers +
			r.MaxDualSourceDrawBuffers + r.FragmentPrecisionHigh +
			r.OESStandardDerivatives + r.OESEGLImageExternal + r.ARBTextureRectangle +
			r.EXTBlendFuncExtended + r.EXTDrawBuffers + r.EXTFragDepth +
			r.EXTShaderTextureLOD + r.EXTShaderFramebufferFetch +
			r.NVShaderFramebufferFetch + r.ARMShaderFramebufferFetch +
			r.OVRMultiview + r.OVRMultiview2 + r.EXTYUVTarget + r.OESSampleVariables +
			r.EXTGeometryShader + r.EXTTessellationShader +
			r.ANGLETextureMultisample + r.APPLEClipDistance
		if sum != 7 {
			t.Errorf("setter %q did not set exactly one field (sum %d)", key, sum)
		}
	}
}

func TestFNVHash64(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"", 0xcbf29ce484222325},
		{"a", 0xaf63dc4c8601ec8c},
		{"foobar", 0x85944171f73967e8},
	}
	for _, tt := range tests {
		if got := FNVHash64([]byte(tt.in)); got != tt.want {
			t.Errorf("FNVHash64(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}
