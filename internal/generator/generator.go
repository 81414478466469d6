package generator

import (
	"bytes"
	"embed"
	"fmt"
	"go/token"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/seitarof/gen-derive/attr"
	"github.com/seitarof/gen-derive/internal/analyzer"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Generator renders analysis plans into a report.
type Generator interface {
	Generate(cfg Config, plans []analyzer.Plan) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
	SourceName() string
	AnnotationNamespace() string
}

// FileWriter writes the rendered report.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	writer FileWriter
	tmpl   *template.Template
}

type fileWriter struct {
	stdout io.Writer
}

type templateData struct {
	Source    string
	Namespace string
	Plans     []analyzer.Plan
}

// New creates a report generator.
func New(w FileWriter) Generator {
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"annotations": renderAnnotations,
		"join":        strings.Join,
		"pos":         renderPos,
	}).ParseFS(templateFS, "templates/*.tmpl"))
	return &generatorImpl{writer: w, tmpl: tmpl}
}

// NewFileWriter creates a writer that writes files, or to stdout when the
// filename is empty or "-".
func NewFileWriter(stdout io.Writer) FileWriter {
	return &fileWriter{stdout: stdout}
}

func (g *generatorImpl) Generate(cfg Config, plans []analyzer.Plan) error {
	if len(plans) == 0 {
		return fmt.Errorf("no items to report")
	}

	data := templateData{
		Source:    cfg.SourceName(),
		Namespace: cfg.AnnotationNamespace(),
		Plans:     plans,
	}
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "report.tmpl", data); err != nil {
		return fmt.Errorf("template: %w", err)
	}
	if err := g.writer.Write(cfg.OutputFilename(), buf.Bytes()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (w *fileWriter) Write(filename string, data []byte) error {
	if filename == "" || filename == "-" {
		_, err := w.stdout.Write(data)
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

func renderPos(pos token.Position) string {
	if !pos.IsValid() {
		return "-"
	}
	return pos.String()
}

// renderAnnotations returns one line per lookup result, each starting with a
// newline and indent, so the template can append it to the owner's line.
func renderAnnotations(a analyzer.Annotations, indent string) string {
	if a.IsZero() {
		return ""
	}
	var b strings.Builder
	for _, f := range a.Flags {
		state := "unset"
		if f.Set {
			state = "set"
		}
		fmt.Fprintf(&b, "\n%sflag %s: %s", indent, f.Name, state)
	}
	for _, k := range a.Keys {
		if k.Found {
			fmt.Fprintf(&b, "\n%skey %s = %s", indent, k.Name, strconv.Quote(k.Value))
		} else {
			fmt.Fprintf(&b, "\n%skey %s: absent", indent, k.Name)
		}
	}
	if len(a.Entries) > 0 {
		parts := make([]string, 0, len(a.Entries))
		for _, e := range a.Entries {
			parts = append(parts, renderEntry(e))
		}
		fmt.Fprintf(&b, "\n%sentries: %s", indent, strings.Join(parts, ", "))
	}
	return b.String()
}

func renderEntry(e attr.Entry) string {
	if e.IsFlag() {
		return e.Name
	}
	return e.Name + " = " + e.Value.Raw
}
