package cli

import (
	"github.com/seitarof/gen-derive/attr"
	"github.com/seitarof/gen-derive/internal/analyzer"
	"github.com/seitarof/gen-derive/internal/logger"
)

// Config stores CLI options for a single inspection run.
type Config struct {
	Package     string
	DefsFile    string
	Types       []string
	IgnoreTypes []string
	Namespace   string
	Flags       []string
	Keys        []string
	Body        string
	Strict      bool
	Output      string
	LogLevel    logger.Level
	JSONLog     bool
	ShowVersion bool
}

// OutputFilename returns the report path for generator layer. Empty means
// stdout.
func (c *Config) OutputFilename() string {
	return c.Output
}

// SourceName names where the items were loaded from.
func (c *Config) SourceName() string {
	if c.DefsFile != "" {
		return c.DefsFile
	}
	return c.Package
}

// AnnotationNamespace returns the namespace annotations are looked up in.
func (c *Config) AnnotationNamespace() string {
	return c.Namespace
}

func (c *Config) analyzerOptions() analyzer.Options {
	mode := attr.Tolerant
	if c.Strict {
		mode = attr.Strict
	}
	return analyzer.Options{
		Namespace: c.Namespace,
		Flags:     c.Flags,
		Keys:      c.Keys,
		Body:      c.Body,
		Mode:      mode,
	}
}
