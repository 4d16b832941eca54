package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/shtranslate/angle"
	"github.com/gogpu/shtranslate/rpc"
)

func serveCmd() *cobra.Command {
	var (
		wasmPath   string
		configPath string
		logLevel   string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the line-delimited JSON-RPC loop over stdin/stdout",
		Long: `Serve reads one JSON-RPC 2.0 request per line from stdin and writes one
response per line to stdout, in order. Logging goes to stderr so it never
interleaves with protocol output. The loop ends on EOF or after a shutdown
request is acknowledged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var fc fileConfig
			if configPath != "" {
				loaded, err := loadFileConfig(configPath)
				if err != nil {
					return err
				}
				fc = loaded
			}

			logger, err := newLogger(logLevel, fc.LogLevel)
			if err != nil {
				return err
			}

			path, err := resolveWasmPath(wasmPath, fc.Wasm)
			if err != nil {
				return err
			}
			logger.Info("loading translator", "path", path)
			rt, err := angle.Open(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := rt.Close(); cerr != nil {
					logger.Error("closing translator", "error", cerr)
				}
			}()

			logger.Info("serving", "transport", "stdio")
			return rpc.Serve(os.Stdin, os.Stdout, rt)
		},
	}
	cmd.Flags().StringVar(&wasmPath, "wasm", "", "path to the translator wasm artifact")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default info)")
	return cmd
}

// newLogger builds the stderr logger. The flag wins over the config file.
func newLogger(flagLevel, fileLevel string) (*slog.Logger, error) {
	name := flagLevel
	if name == "" {
		name = fileLevel
	}
	level := slog.LevelInfo
	switch name {
	case "", "info":
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q", name)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}
