package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveWasmPathPrecedence(t *testing.T) {
	t.Setenv(envWasm, "/from/env.wasm")

	got, err := resolveWasmPath("/from/flag.wasm", "/from/config.wasm")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/from/flag.wasm" {
		t.Errorf("flag should win, got %q", got)
	}

	got, err = resolveWasmPath("", "/from/config.wasm")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/from/env.wasm" {
		t.Errorf("env should beat config, got %q", got)
	}

	t.Setenv(envWasm, "")
	got, err = resolveWasmPath("", "/from/config.wasm")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/from/config.wasm" {
		t.Errorf("config should be used, got %q", got)
	}
}

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("wasm: /opt/translator.wasm\nlog_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	fc, err := loadFileConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if fc.Wasm != "/opt/translator.wasm" {
		t.Errorf("Wasm = %q", fc.Wasm)
	}
	if fc.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", fc.LogLevel)
	}
}

func TestLoadFileConfigErrors(t *testing.T) {
	if _, err := loadFileConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("wasm: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFileConfig(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
