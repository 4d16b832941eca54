package shtranslate

import (
	"encoding/base64"
	"fmt"
	"math"
)

// Config is a fully validated translation request: the compiler
// configuration plus the decoded source. It is never constructed partially;
// ParseRequest either returns a complete Config or an error naming the
// offending field.
type Config struct {
	Source               string
	Stage                Stage
	Spec                 Spec
	Output               Output
	Options              CompileOptions
	Resources            BuiltInResources
	PrintActiveVariables bool
}

// ParseRequest validates a translate request payload and produces the
// compiler configuration. Validation short-circuits on the first failure:
// source, stage, spec, output, compile options, resource overrides, then the
// reflection flag. Resource limits resolve in a fixed precedence order —
// baseline, spec-driven floors, explicit overrides — so an explicit override
// always wins; the webgln spec variant forces high-precision fragment
// support off regardless of overrides.
func ParseRequest(params map[string]any) (*Config, *Error) {
	cfg := &Config{
		Options:   DefaultCompileOptions(),
		Resources: DefaultResources(),
	}

	// 1. Source.
	raw, ok := params["shader_code_base64"]
	if !ok {
		return nil, invalidParams("Missing 'shader_code_base64' parameter.")
	}
	encoded, ok := raw.(string)
	if !ok {
		return nil, invalidParams("'shader_code_base64' parameter must be a string.")
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, invalidParams("Failed to decode 'shader_code_base64'.")
	}
	cfg.Source = string(decoded)

	// 2. Stage.
	raw, ok = params["shader_type"]
	if !ok {
		return nil, invalidParams("Missing 'shader_type' parameter.")
	}
	stageName, ok := raw.(string)
	if !ok {
		return nil, invalidParams("'shader_type' parameter must be a string.")
	}
	cfg.Stage, ok = ParseStage(stageName)
	if !ok {
		return nil, invalidParams("Unsupported 'shader_type': " + stageName)
	}

	// 3. Spec.
	cfg.Spec = SpecGLES2
	if raw, present := params["spec"]; present {
		token, isString := raw.(string)
		if !isString {
			return nil, invalidParams("'spec' parameter must be a string.")
		}
		cfg.Spec, ok = ParseSpec(token)
		if !ok {
			return nil, invalidParams("Unsupported 'spec': " + token)
		}
	}

	// 4. Output.
	cfg.Output = OutputESSL
	if raw, present := params["output"]; present {
		token, isString := raw.(string)
		if !isString {
			return nil, invalidParams("'output' parameter must be a string.")
		}
		cfg.Output, ok = ParseOutput(token)
		if !ok {
			return nil, invalidParams("Unsupported 'output': " + token)
		}
	}

	// 5. Compile options.
	if raw, present := params["compile_options"]; present {
		co, isObject := raw.(map[string]any)
		if !isObject {
			return nil, invalidParams("'compile_options' must be an object.")
		}
		cfg.Options = CompileOptions{
			IntermediateTree:                        boolOption(co, "intermediate_tree", false),
			ObjectCode:                              boolOption(co, "object_code", true),
			InitializeUninitializedLocals:           boolOption(co, "initialize_uninitialized_locals", true),
			InitializeBuiltinsForInstancedMultiview: boolOption(co, "initialize_builtins_for_instanced_multiview", false),
			SelectViewInNvGLSLVertexShader:          boolOption(co, "select_view_in_nv_glsl_vertex_shader", false),
		}
	}

	// 6. Resource limit overrides, applied after the spec floors so an
	// explicit override always wins.
	cfg.Resources.ApplySpecFloors(cfg.Spec)
	if raw, present := params["resources"]; present {
		res, isObject := raw.(map[string]any)
		if !isObject {
			return nil, invalidParams("'resources' must be an object.")
		}
		if hashRaw, hasHash := res["EnableNameHashing"]; hasHash {
			enable, isBool := hashRaw.(bool)
			if !isBool {
				return nil, invalidParams("resources.EnableNameHashing must be a boolean.")
			}
			if enable {
				cfg.Resources.NameHash = FNVHash64
			} else {
				cfg.Resources.NameHash = nil
			}
		}
		for key, value := range res {
			set, known := resourceSetters[key]
			if !known {
				continue
			}
			n, isInt := intValue(value)
			if !isInt {
				return nil, invalidParams(fmt.Sprintf("resources.%s must be an integer.", key))
			}
			set(&cfg.Resources, n)
		}
	}

	// 7. webgln forces high-precision fragment support off, overrides
	// notwithstanding.
	if cfg.Spec == SpecWebGLNoHighP {
		cfg.Resources.FragmentPrecisionHigh = 0
	}

	// 8. Reflection flag.
	if raw, present := params["print_active_variables"]; present {
		flag, isBool := raw.(bool)
		if !isBool {
			return nil, invalidParams("'print_active_variables' must be a boolean.")
		}
		cfg.PrintActiveVariables = flag
	}

	return cfg, nil
}

// boolOption reads a named flag from a decoded options object, falling back
// to the per-flag default when the key is absent or not a boolean.
func boolOption(m map[string]any, key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}

// intValue accepts a JSON number with an integral value.
func intValue(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
