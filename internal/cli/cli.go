package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/seitarof/gen-derive/internal/logger"
)

const (
	defaultNamespace = "derive"
	defaultBody      = "todo!()"
)

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var (
		typesRaw, ignoreTypesRaw string
		flagsRaw, keysRaw        string
		logLevelRaw              string
	)

	fs := pflag.NewFlagSet("gen-derive", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Package, "package", "p", "", "Go package path to load")
	fs.StringVarP(&cfg.DefsFile, "defs", "f", "", "YAML definition file to load")
	fs.StringVarP(&typesRaw, "types", "t", "", "comma-separated item names to include (default all)")
	fs.StringVar(&ignoreTypesRaw, "ignore-types", "", "comma-separated item names to skip")
	fs.StringVarP(&cfg.Namespace, "namespace", "n", defaultNamespace, "annotation namespace")
	fs.StringVar(&flagsRaw, "flags", "", "comma-separated flag names to test")
	fs.StringVar(&keysRaw, "keys", "", "comma-separated keys to look up")
	fs.StringVarP(&cfg.Body, "body", "b", defaultBody, "match arm body; $name is replaced with the variant name")
	fs.BoolVar(&cfg.Strict, "strict", false, "fail on malformed annotations and non-string values")
	fs.StringVarP(&cfg.Output, "output", "o", "", "report file (default stdout)")
	fs.StringVar(&logLevelRaw, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.JSONLog, "json-log", false, "log as JSON")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	cfg.Package = strings.TrimSpace(cfg.Package)
	cfg.DefsFile = strings.TrimSpace(cfg.DefsFile)
	switch {
	case cfg.Package == "" && cfg.DefsFile == "":
		return nil, fmt.Errorf("one of --package or --defs is required")
	case cfg.Package != "" && cfg.DefsFile != "":
		return nil, fmt.Errorf("--package and --defs are mutually exclusive")
	}
	cfg.Namespace = strings.TrimSpace(cfg.Namespace)
	if cfg.Namespace == "" {
		return nil, fmt.Errorf("--namespace must not be empty")
	}

	level, err := logger.ParseLevel(logLevelRaw)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	cfg.LogLevel = level

	cfg.Types = splitCommaList(typesRaw)
	cfg.IgnoreTypes = splitCommaList(ignoreTypesRaw)
	cfg.Flags = splitCommaList(flagsRaw)
	cfg.Keys = splitCommaList(keysRaw)
	return cfg, nil
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
