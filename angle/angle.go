package angle

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/gogpu/shtranslate"
)

// Runtime is an instantiated translator module. It implements
// shtranslate.Backend. A Runtime is not safe for concurrent use; the process
// model is strictly request-at-a-time, matching the shim's single linear
// memory.
type Runtime struct {
	ctx     context.Context
	runtime wazero.Runtime
	module  api.Module

	construct    api.Function
	compile      api.Function
	destruct     api.Function
	infoLog      api.Function
	objectCode   api.Function
	objectBinary api.Function
	activeVars   api.Function
	finalize     api.Function
	shimMalloc   api.Function
	shimFree     api.Function
}

// New instantiates the translator from wasm bytes and runs its one-time
// initialization. The context is retained for the lifetime of the Runtime.
func New(ctx context.Context, wasm []byte) (*Runtime, error) {
	r := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, r)

	mod, err := r.InstantiateWithConfig(ctx, wasm,
		wazero.NewModuleConfig().WithName("angle_translator").WithStartFunctions("_initialize"))
	if err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("instantiating translator module: %w", err)
	}

	rt := &Runtime{ctx: ctx, runtime: r, module: mod}
	for _, bind := range []struct {
		name string
		fn   *api.Function
	}{
		{fnConstructCompiler, &rt.construct},
		{fnCompile, &rt.compile},
		{fnDestruct, &rt.destruct},
		{fnGetInfoLog, &rt.infoLog},
		{fnGetObjectCode, &rt.objectCode},
		{fnGetObjectBinary, &rt.objectBinary},
		{fnGetActiveVariables, &rt.activeVars},
		{fnFinalize, &rt.finalize},
		{fnMalloc, &rt.shimMalloc},
		{fnFree, &rt.shimFree},
	} {
		*bind.fn = mod.ExportedFunction(bind.name)
		if *bind.fn == nil {
			_ = r.Close(ctx)
			return nil, fmt.Errorf("translator module does not export %q", bind.name)
		}
	}

	init := mod.ExportedFunction(fnInitialize)
	if init == nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("translator module does not export %q", fnInitialize)
	}
	results, err := init.Call(ctx)
	if err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("calling %s: %w", fnInitialize, err)
	}
	if len(results) == 0 || results[0] == 0 {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("%s reported failure", fnInitialize)
	}
	return rt, nil
}

// Open loads the wasm artifact from disk and instantiates it.
func Open(ctx context.Context, path string) (*Runtime, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading translator module: %w", err)
	}
	return New(ctx, wasm)
}

// Close finalizes the translator and releases the wazero runtime.
func (rt *Runtime) Close() error {
	_, err := rt.finalize.Call(rt.ctx)
	closeErr := rt.runtime.Close(rt.ctx)
	if err != nil {
		return fmt.Errorf("calling %s: %w", fnFinalize, err)
	}
	return closeErr
}

// ConstructCompiler implements shtranslate.Backend. The resource record
// crosses as JSON; a zero handle from the shim means construction failed.
func (rt *Runtime) ConstructCompiler(stage shtranslate.Stage, spec shtranslate.Spec, output shtranslate.Output, resources *shtranslate.BuiltInResources) (shtranslate.Compiler, error) {
	stageEnum, ok := stageEnums[stage]
	if !ok {
		return nil, fmt.Errorf("unknown stage %v", stage)
	}
	specEnum, ok := specEnums[spec]
	if !ok {
		return nil, fmt.Errorf("unknown spec %v", spec)
	}
	outputEnum, ok := outputEnums[output]
	if !ok {
		return nil, fmt.Errorf("unknown output %v", output)
	}

	wire, err := json.Marshal(resourcesWire{
		BuiltInResources: *resources,
		HashNames:        resources.NameHash != nil,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding resources: %w", err)
	}

	ptr, err := rt.writeBytes(wire)
	if err != nil {
		return nil, err
	}
	defer rt.freeBytes(ptr)

	results, err := rt.construct.Call(rt.ctx,
		uint64(stageEnum), uint64(specEnum), uint64(outputEnum),
		uint64(ptr), uint64(len(wire)))
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", fnConstructCompiler, err)
	}
	handle := uint32(results[0])
	if handle == 0 {
		return nil, fmt.Errorf("translator rejected configuration %v/%v/%v", stage, spec, output)
	}
	return &compiler{rt: rt, handle: handle}, nil
}

// writeBytes copies host bytes into shim-owned memory.
func (rt *Runtime) writeBytes(data []byte) (uint32, error) {
	results, err := rt.shimMalloc.Call(rt.ctx, uint64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("calling %s: %w", fnMalloc, err)
	}
	ptr := uint32(results[0])
	if ptr == 0 {
		return 0, fmt.Errorf("%s failed for %d bytes", fnMalloc, len(data))
	}
	if !rt.module.Memory().Write(ptr, data) {
		rt.freeBytes(ptr)
		return 0, fmt.Errorf("write of %d bytes at 0x%X out of range", len(data), ptr)
	}
	return ptr, nil
}

func (rt *Runtime) freeBytes(ptr uint32) {
	_, _ = rt.shimFree.Call(rt.ctx, uint64(ptr))
}

// readRegion calls a packed-region getter and copies the result out of
// linear memory before the shim can reuse it.
func (rt *Runtime) readRegion(fn api.Function, name string, handle uint32) ([]byte, error) {
	results, err := fn.Call(rt.ctx, uint64(handle))
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", name, err)
	}
	ptr, size := unpackRegion(results[0])
	if size == 0 {
		return nil, nil
	}
	data, ok := rt.module.Memory().Read(ptr, size)
	if !ok {
		return nil, fmt.Errorf("%s returned region 0x%X+%d out of range", name, ptr, size)
	}
	out := make([]byte, size)
	copy(out, data)
	return out, nil
}
