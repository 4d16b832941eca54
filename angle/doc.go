// Package angle hosts the ANGLE shader translator, compiled to WebAssembly,
// as a shtranslate.Backend. The module is instantiated with wazero; no cgo
// and no native library loading is involved.
//
// The wasm artifact is a WASI reactor built by scripts/build-angle-wasm.sh
// from a small C shim over ANGLE's ShaderLang API. The shim exposes a flat
// export surface:
//
//	sh_initialize() -> i32
//	sh_finalize() -> i32
//	sh_construct_compiler(stage, spec, output, res_ptr, res_len) -> i32 handle
//	sh_compile(handle, src_ptr, src_len, options) -> i32
//	sh_destruct(handle)
//	sh_get_info_log(handle) -> i64
//	sh_get_object_code(handle) -> i64
//	sh_get_object_binary(handle) -> i64
//	sh_get_active_variables(handle) -> i64
//	malloc(size) -> i32
//	free(ptr)
//
// Structured values cross the boundary as JSON in linear memory: resource
// limits travel in, the reflection tree travels out. Getter results pack a
// pointer and a length into one i64 (pointer in the high 32 bits); the
// returned region is owned by the shim and valid until the next call on the
// same handle.
package angle
