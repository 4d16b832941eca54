package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/shtranslate"
	"github.com/gogpu/shtranslate/angle"
	"github.com/gogpu/shtranslate/spvasm"
)

func translateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translate [options] file1 file2 ...",
		Short: "Compile shader files and print logs, code, and variables",
		// Options are order-sensitive and interleave with filenames; the
		// scanner below owns the whole argument list.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			wasmFlag := ""
			rest := args[:0:0]
			for _, arg := range args {
				if v, ok := strings.CutPrefix(arg, "--wasm="); ok {
					wasmFlag = v
					continue
				}
				if arg == "--help" || arg == "-h" {
					usage(cmd.OutOrStdout())
					return nil
				}
				rest = append(rest, arg)
			}

			wasmPath, err := resolveWasmPath(wasmFlag, "")
			if err != nil {
				return err
			}
			rt, err := angle.Open(cmd.Context(), wasmPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			if code := runBatch(rest, rt, cmd.OutOrStdout()); code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}
}

// batchState is the scanner's accumulated configuration. Option arguments
// mutate it; each filename argument compiles with the state in force at that
// point.
type batchState struct {
	spec      shtranslate.Spec
	output    shtranslate.Output
	options   shtranslate.CompileOptions
	printVars bool

	// resourceOps are the explicit resource mutations (-x flags, -s=wn) in
	// argument order. They are replayed on top of the spec floors at each
	// construction so an explicit setting always wins over a floor.
	resourceOps []func(*shtranslate.BuiltInResources)
}

// resources resolves the effective limits: baseline, spec floors, then the
// explicit mutations in order.
func (st *batchState) resources() shtranslate.BuiltInResources {
	r := shtranslate.DefaultResources()
	r.ApplySpecFloors(st.spec)
	for _, op := range st.resourceOps {
		op(&r)
	}
	return r
}

// runBatch processes the argument list left to right and reports the process
// exit code: 0 on success, 1 for a usage error, 2 when any shader failed to
// compile, 3 when a compiler instance could not be constructed. A compile
// failure does not stop later files; usage and construction failures do.
func runBatch(args []string, b shtranslate.Backend, w io.Writer) int {
	st := &batchState{spec: shtranslate.SpecGLES2, output: shtranslate.OutputESSL}
	pool := shtranslate.NewPool(b)
	defer pool.ReleaseAll()

	exit := 0
	numCompiles := 0
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			if !scanOption(st, arg) {
				usage(w)
				return shtranslate.CodeUsage
			}
			continue
		}
		code := compileFile(st, pool, arg, numCompiles, w)
		switch code {
		case shtranslate.CodeConstructFailure:
			return code
		case shtranslate.CodeCompileFailure:
			exit = code
		}
		numCompiles++
	}

	if numCompiles == 0 && exit == 0 {
		usage(w)
		return shtranslate.CodeUsage
	}
	return exit
}

// scanOption applies one option argument to the state. It reports false for
// anything unrecognized.
func scanOption(st *batchState, arg string) bool {
	switch {
	case arg == "-i":
		st.options.IntermediateTree = true
	case arg == "-o":
		st.options.ObjectCode = true
	case arg == "-u":
		st.printVars = true
	case strings.HasPrefix(arg, "-s="):
		return scanSpec(st, arg[len("-s="):])
	case strings.HasPrefix(arg, "-b="):
		st.options.InitializeUninitializedLocals = true
		return scanOutput(st, arg[len("-b="):])
	case strings.HasPrefix(arg, "-x="):
		return scanExtension(st, arg[len("-x="):])
	default:
		return false
	}
	return true
}

func scanSpec(st *batchState, token string) bool {
	switch token {
	case "e", "e2":
		st.spec = shtranslate.SpecGLES2
	case "e3":
		st.spec = shtranslate.SpecGLES3
	case "e31":
		st.spec = shtranslate.SpecGLES31
	case "e32":
		st.spec = shtranslate.SpecGLES32
	case "w":
		st.spec = shtranslate.SpecWebGL
	case "wn":
		st.spec = shtranslate.SpecWebGLNoHighP
		st.resourceOps = append(st.resourceOps, func(r *shtranslate.BuiltInResources) {
			r.FragmentPrecisionHigh = 0
		})
	case "w2":
		st.spec = shtranslate.SpecWebGL2
	case "w3":
		st.spec = shtranslate.SpecWebGL3
	default:
		return false
	}
	return true
}

func scanOutput(st *batchState, token string) bool {
	switch {
	case token == "e":
		st.output = shtranslate.OutputESSL
	case strings.HasPrefix(token, "g"):
		out, ok := shtranslate.ParseOutput("glsl" + token[1:])
		if !ok {
			return false
		}
		st.output = out
	case token == "v":
		st.output = shtranslate.OutputSPIRV
	case token == "h11":
		st.output = shtranslate.OutputHLSL11
	case token == "h" || token == "h9":
		st.output = shtranslate.OutputHLSL9
	case token == "m":
		st.output = shtranslate.OutputMSL
	default:
		return false
	}
	return true
}

func scanExtension(st *batchState, token string) bool {
	if token == "" {
		return false
	}
	// Only b and w take a count suffix.
	if len(token) > 1 && token[0] != 'b' && token[0] != 'w' {
		return false
	}
	set := func(op func(*shtranslate.BuiltInResources)) {
		st.resourceOps = append(st.resourceOps, op)
	}
	switch token[0] {
	case 'i':
		set(func(r *shtranslate.BuiltInResources) { r.OESEGLImageExternal = 1 })
	case 'd':
		set(func(r *shtranslate.BuiltInResources) { r.OESStandardDerivatives = 1 })
	case 'r':
		set(func(r *shtranslate.BuiltInResources) { r.ARBTextureRectangle = 1 })
	case 'b':
		n, ok := countSuffix(token[1:])
		if !ok {
			return false
		}
		set(func(r *shtranslate.BuiltInResources) {
			r.EXTBlendFuncExtended = 1
			r.MaxDualSourceDrawBuffers = n
		})
	case 'w':
		n, ok := countSuffix(token[1:])
		if !ok {
			return false
		}
		set(func(r *shtranslate.BuiltInResources) {
			r.EXTDrawBuffers = 1
			r.MaxDrawBuffers = n
		})
	case 'g':
		set(func(r *shtranslate.BuiltInResources) { r.EXTFragDepth = 1 })
	case 'l':
		set(func(r *shtranslate.BuiltInResources) { r.EXTShaderTextureLOD = 1 })
	case 'f':
		set(func(r *shtranslate.BuiltInResources) { r.EXTShaderFramebufferFetch = 1 })
	case 'n':
		set(func(r *shtranslate.BuiltInResources) { r.NVShaderFramebufferFetch = 1 })
	case 'a':
		set(func(r *shtranslate.BuiltInResources) { r.ARMShaderFramebufferFetch = 1 })
	case 'm':
		set(func(r *shtranslate.BuiltInResources) {
			r.OVRMultiview = 1
			r.OVRMultiview2 = 1
		})
		st.options.InitializeBuiltinsForInstancedMultiview = true
		st.options.SelectViewInNvGLSLVertexShader = true
	case 'y':
		set(func(r *shtranslate.BuiltInResources) { r.EXTYUVTarget = 1 })
	case 's':
		set(func(r *shtranslate.BuiltInResources) { r.OESSampleVariables = 1 })
	default:
		return false
	}
	return true
}

// countSuffix parses an optional positive count after an extension letter
// (default 1).
func countSuffix(s string) (int, bool) {
	if s == "" {
		return 1, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// compileFile translates one file through the stage's pooled compiler and
// prints the framed sections. It returns 0, CodeCompileFailure, or
// CodeConstructFailure.
func compileFile(st *batchState, pool *shtranslate.Pool, path string, num int, w io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "Error: unable to open input file: %s\n", path)
		return shtranslate.CodeCompileFailure
	}

	opts := st.options
	if st.output == shtranslate.OutputHLSL9 || st.output == shtranslate.OutputHLSL11 {
		opts.SelectViewInNvGLSLVertexShader = false
	}

	cfg := &shtranslate.Config{
		Source:               string(source),
		Stage:                shtranslate.StageFromFilename(path),
		Spec:                 st.spec,
		Output:               st.output,
		Options:              opts,
		Resources:            st.resources(),
		PrintActiveVariables: st.printVars,
	}

	result, terr := pool.Translate(cfg)
	if terr != nil && terr.Code == shtranslate.CodeConstructFailure {
		fmt.Fprintln(w, terr.Message)
		return terr.Code
	}

	infoLog := ""
	if result != nil {
		infoLog = result.InfoLog
	} else if data, ok := terr.Data.(map[string]string); ok {
		infoLog = data["info_log"]
	}
	logSection(w, num, "INFO LOG", infoLog)

	if terr != nil {
		return terr.Code
	}

	if result.ObjectCode != nil {
		logSection(w, num, "OBJ CODE", *result.ObjectCode)
	} else if result.ObjectCodeBase64 != nil {
		logSection(w, num, "OBJ CODE", disassemble(*result.ObjectCodeBase64))
	}
	if result.ActiveVariables != nil {
		var sb strings.Builder
		printActiveVariables(&sb, result.ActiveVariables)
		logSection(w, num, "VARIABLES", strings.TrimSuffix(sb.String(), "\n"))
	}
	return 0
}

// logSection prints one framed output section followed by a blank separator.
func logSection(w io.Writer, num int, name, body string) {
	fmt.Fprintf(w, "#### BEGIN COMPILER %d %s ####\n", num, name)
	fmt.Fprintln(w, body)
	fmt.Fprintf(w, "#### END COMPILER %d %s ####\n", num, name)
	fmt.Fprint(w, "\n\n")
}

// disassemble decodes base64 SPIR-V and renders it as .spvasm text.
func disassemble(encoded string) string {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Sprintf("; error decoding binary: %v", err)
	}
	text, err := spvasm.Disassemble(blob)
	if err != nil {
		return text + fmt.Sprintf("; error disassembling: %v", err)
	}
	return strings.TrimSuffix(text, "\n")
}

func usage(w io.Writer) {
	fmt.Fprint(w,
		`Usage: shtranslate translate [-i -o -u -s=e2 -b=e -x=i ...] file1 file2 ...
Where: filename : filename ending in .frag*, .vert*, .comp*, .geom*, .tcs* or .tes*
       -i       : print intermediate tree
       -o       : print translated code
       -u       : print active attribs, uniforms, varyings and program outputs
       -s=e2    : use GLES2 spec (this is by default)
       -s=e3    : use GLES3 spec
       -s=e31   : use GLES31 spec
       -s=e32   : use GLES32 spec
       -s=w     : use WebGL 1.0 spec
       -s=wn    : use WebGL 1.0 spec with no highp support in fragment shaders
       -s=w2    : use WebGL 2.0 spec
       -s=w3    : use WebGL 3.0 spec
       -b=e     : output GLSL ES code (this is by default)
       -b=g     : output GLSL code (compatibility profile)
       -b=g[NUM]: output GLSL code (NUM can be 130, 140, 150, 330, 400, 410, 420, 430, 440, 450)
       -b=v     : output SPIR-V code (printed as assembly text)
       -b=h9    : output HLSL9 code
       -b=h11   : output HLSL11 code
       -b=m     : output MSL code
       -x=i     : enable GL_OES_EGL_image_external
       -x=d     : enable GL_OES_standard_derivatives
       -x=r     : enable ARB_texture_rectangle
       -x=b[NUM]: enable EXT_blend_func_extended (NUM default 1)
       -x=w[NUM]: enable EXT_draw_buffers (NUM default 1)
       -x=g     : enable EXT_frag_depth
       -x=l     : enable EXT_shader_texture_lod
       -x=f     : enable EXT_shader_framebuffer_fetch
       -x=n     : enable NV_shader_framebuffer_fetch
       -x=a     : enable ARM_shader_framebuffer_fetch
       -x=m     : enable OVR_multiview
       -x=y     : enable EXT_YUV_target
       -x=s     : enable OES_sample_variables
       --wasm=PATH : path to the translator wasm artifact
`)
}
