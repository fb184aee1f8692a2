package format

import (
	"bytes"
	"io"

	"github.com/dhamidi/ilc/lang"
	"gopkg.in/yaml.v3"
)

// YAMLEncoder writes each report as its own YAML document.
type YAMLEncoder struct {
	w        io.Writer
	report   *lang.Report
	sections Section
	count    int
}

func NewYAMLEncoder(w io.Writer, sections Section) *YAMLEncoder {
	return &YAMLEncoder{w: w, sections: sections}
}

func (e *YAMLEncoder) Encode(report *lang.Report) error {
	e.report = report
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if e.count > 0 {
		text = append([]byte("---\n"), text...)
	}
	e.count++
	_, err = e.w.Write(text)
	return err
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(buildReport(e.report, e.sections)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
