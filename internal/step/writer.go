package step

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Ref is a reference to an entity instance (#N).
type Ref int

// Enum is an enumeration value written as .NAME.
type Enum string

// Logical values.
const (
	True  Enum = "T"
	False Enum = "F"
)

// Bool returns the logical enumeration for v.
func Bool(v bool) Enum {
	if v {
		return True
	}
	return False
}

// Raw is written verbatim.
type Raw string

// Special parameter values.
const (
	Unset   Raw = "$" // optional value not provided
	Derived Raw = "*" // value derived by a supertype
)

// List is an aggregate parameter written as (a,b,...).
type List []any

// Typed wraps a value in a defined type, e.g. LENGTH_MEASURE(1.).
type Typed struct {
	Type  string
	Value any
}

// Part is one component of a complex entity instance.
type Part struct {
	Name   string
	Params []any
}

// Header carries the HEADER section fields.
type Header struct {
	Name         string
	Description  string
	Author       string
	Organization string
	System       string
	Timestamp    time.Time
	Schema       string
}

// DefaultSchema is the AP214 automotive design schema identifier.
const DefaultSchema = "AUTOMOTIVE_DESIGN { 1 0 10303 214 1 1 1 1 }"

// Writer accumulates entity instances.
type Writer struct {
	lines []string
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{lines: make([]string, 0, 256)}
}

// Len returns the number of entity instances added so far.
func (w *Writer) Len() int { return len(w.lines) }

// Add appends a simple entity instance and returns its reference.
func (w *Writer) Add(name string, params ...any) Ref {
	ref := Ref(len(w.lines) + 1)
	w.lines = append(w.lines, fmt.Sprintf("#%d=%s(%s);", ref, name, formatParams(params)))
	return ref
}

// AddComplex appends a complex entity instance built from several parts.
func (w *Writer) AddComplex(parts ...Part) Ref {
	ref := Ref(len(w.lines) + 1)
	var b strings.Builder
	fmt.Fprintf(&b, "#%d=(", ref)
	for _, p := range parts {
		fmt.Fprintf(&b, "%s(%s)", p.Name, formatParams(p.Params))
	}
	b.WriteString(");")
	w.lines = append(w.lines, b.String())
	return ref
}

func formatParams(params []any) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = formatParam(p)
	}
	return strings.Join(parts, ",")
}

func formatParam(p any) string {
	switch v := p.(type) {
	case nil:
		return string(Unset)
	case Ref:
		return "#" + strconv.Itoa(int(v))
	case []Ref:
		parts := make([]string, len(v))
		for i, r := range v {
			parts[i] = "#" + strconv.Itoa(int(r))
		}
		return "(" + strings.Join(parts, ",") + ")"
	case string:
		return EncodeString(v)
	case float64:
		return FormatReal(v)
	case int:
		return strconv.Itoa(v)
	case bool:
		return "." + string(Bool(v)) + "."
	case Enum:
		return "." + string(v) + "."
	case Raw:
		return string(v)
	case List:
		return "(" + formatParams(v) + ")"
	case []float64:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = FormatReal(f)
		}
		return "(" + strings.Join(parts, ",") + ")"
	case Typed:
		return v.Type + "(" + formatParam(v.Value) + ")"
	default:
		panic(fmt.Sprintf("step: unsupported parameter type %T", p))
	}
}

// WriteTo writes the complete exchange structure.
func (w *Writer) WriteTo(out io.Writer, h Header) error {
	schema := h.Schema
	if schema == "" {
		schema = DefaultSchema
	}
	ts := h.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	var b strings.Builder
	b.WriteString("ISO-10303-21;\nHEADER;\n")
	fmt.Fprintf(&b, "FILE_DESCRIPTION((%s),'2;1');\n", EncodeString(h.Description))
	fmt.Fprintf(&b, "FILE_NAME(%s,%s,(%s),(%s),%s,%s,'');\n",
		EncodeString(h.Name),
		EncodeString(ts.UTC().Format("2006-01-02T15:04:05")),
		EncodeString(h.Author),
		EncodeString(h.Organization),
		EncodeString(h.System),
		EncodeString(h.System))
	fmt.Fprintf(&b, "FILE_SCHEMA((%s));\nENDSEC;\nDATA;\n", EncodeString(schema))
	if _, err := io.WriteString(out, b.String()); err != nil {
		return err
	}
	for _, line := range w.lines {
		if _, err := io.WriteString(out, line+"\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, "ENDSEC;\nEND-ISO-10303-21;\n")
	return err
}
