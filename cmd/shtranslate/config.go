package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// envWasm names the translator artifact when no flag or config file does.
const envWasm = "SHTRANSLATE_WASM"

// defaultWasmName is looked up beside the executable as a last resort.
const defaultWasmName = "angle_translator.wasm"

// fileConfig is the YAML config file shape.
type fileConfig struct {
	Wasm     string `yaml:"wasm"`
	LogLevel string `yaml:"log_level"`
}

func loadFileConfig(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("reading config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return fc, nil
}

// resolveWasmPath picks the translator artifact: flag, then environment,
// then config file, then the default name next to the executable.
func resolveWasmPath(flagValue, configValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(envWasm); env != "" {
		return env, nil
	}
	if configValue != "" {
		return configValue, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	path := filepath.Join(filepath.Dir(exe), defaultWasmName)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no translator artifact: set --wasm, %s, or place %s beside the executable", envWasm, defaultWasmName)
	}
	return path, nil
}
