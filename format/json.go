package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/ilc/lang"
)

type JSONEncoder struct {
	w        io.Writer
	report   *lang.Report
	sections Section
}

func NewJSONEncoder(w io.Writer, sections Section) *JSONEncoder {
	return &JSONEncoder{w: w, sections: sections}
}

func (e *JSONEncoder) Encode(report *lang.Report) error {
	e.report = report
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildReport(e.report, e.sections), "", "  ")
}

// jsonReport mirrors lang.Report for both the JSON and YAML encoders.
type jsonReport struct {
	Path        string           `json:"path" yaml:"path"`
	OK          bool             `json:"ok" yaml:"ok"`
	Tokens      []jsonToken      `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Trace       []jsonTraceEvent `json:"trace,omitempty" yaml:"trace,omitempty"`
	Symbols     []jsonSymbol     `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

type jsonPosition struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

type jsonToken struct {
	Kind     string       `json:"kind" yaml:"kind"`
	Literal  string       `json:"literal" yaml:"literal"`
	Position jsonPosition `json:"position" yaml:"position"`
}

type jsonTraceEvent struct {
	Production string    `json:"production" yaml:"production"`
	Depth      int       `json:"depth" yaml:"depth"`
	Lookahead  jsonToken `json:"lookahead" yaml:"lookahead"`
}

type jsonSymbol struct {
	Name     string       `json:"name" yaml:"name"`
	Kind     string       `json:"kind" yaml:"kind"`
	Category string       `json:"category" yaml:"category"`
	Depth    int          `json:"depth" yaml:"depth"`
	Position jsonPosition `json:"position" yaml:"position"`
}

type jsonDiagnostic struct {
	Severity string       `json:"severity" yaml:"severity"`
	Code     string       `json:"code" yaml:"code"`
	Message  string       `json:"message" yaml:"message"`
	Position jsonPosition `json:"position" yaml:"position"`
}

func buildReport(r *lang.Report, sections Section) jsonReport {
	data := jsonReport{
		Path: r.Path,
		OK:   r.OK(),
	}
	if sections.Has(Tokens) {
		for _, tok := range r.Tokens {
			data.Tokens = append(data.Tokens, jsonToken{
				Kind:     tok.Kind.String(),
				Literal:  tok.Literal,
				Position: jsonPosition{Line: tok.Line, Column: tok.Column},
			})
		}
	}
	if sections.Has(Trace) {
		for _, ev := range r.Trace {
			data.Trace = append(data.Trace, jsonTraceEvent{
				Production: ev.Production,
				Depth:      ev.Depth,
				Lookahead: jsonToken{
					Kind:     ev.Lookahead.Kind.String(),
					Literal:  ev.Lookahead.Literal,
					Position: jsonPosition{Line: ev.Lookahead.Line, Column: ev.Lookahead.Column},
				},
			})
		}
	}
	if sections.Has(Symbols) {
		for _, decl := range r.Declarations {
			s := decl.Symbol
			data.Symbols = append(data.Symbols, jsonSymbol{
				Name:     s.Name,
				Kind:     s.Kind.String(),
				Category: s.Category.String(),
				Depth:    decl.Depth,
				Position: jsonPosition{Line: s.Line, Column: s.Column},
			})
		}
	}
	if sections.Has(Diagnostics) {
		for _, d := range r.Diagnostics() {
			data.Diagnostics = append(data.Diagnostics, jsonDiagnostic{
				Severity: string(d.Severity),
				Code:     string(d.Code),
				Message:  d.Message,
				Position: jsonPosition{Line: d.Line, Column: d.Column},
			})
		}
	}
	return data
}
