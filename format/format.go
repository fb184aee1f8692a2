package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/ilc/lang"
)

// Section selects which parts of a report an encoder writes.
type Section uint8

const (
	Diagnostics Section = 1 << iota
	Tokens
	Symbols
	Trace
)

func (s Section) Has(other Section) bool {
	return s&other != 0
}

type Encoder interface {
	encoding.TextMarshaler
	Encode(report *lang.Report) error
}

type Options struct {
	Sections Section
	// Color enables terminal styling; only the line format uses it.
	Color bool
}

// Names lists the formats NewEncoder accepts.
func Names() []string {
	return []string{"line", "json", "yaml"}
}

func NewEncoder(w io.Writer, name string, opts Options) (Encoder, error) {
	if opts.Sections == 0 {
		opts.Sections = Diagnostics
	}
	switch name {
	case "", "line":
		return NewLineEncoder(w, opts), nil
	case "json":
		return NewJSONEncoder(w, opts.Sections), nil
	case "yaml":
		return NewYAMLEncoder(w, opts.Sections), nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Names())
}
