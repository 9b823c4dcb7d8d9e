// Package validation compares the document written by the consumer against an
// expected fixture.
package validation

import (
	"bytes"
	"fmt"
	"os"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"systest/internal/domain"
)

// Outcome is the result of one comparison
type Outcome struct {
	Match    bool
	Expected interface{}
	Actual   interface{}
	Diff     string // -expected +actual, empty on match
}

// Validator checks output files for structural equality with a fixture
type Validator struct{}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate loads both YAML documents and compares them. Mappings compare without
// regard to key order, sequences element by element. A missing file is a
// configuration error.
func (v *Validator) Validate(validationFile, outputFile string) (Outcome, error) {
	if !isFile(validationFile) {
		return Outcome{}, domain.NewConfigError("validate", validationFile, "validation file does not exist")
	}
	if !isFile(outputFile) {
		return Outcome{}, domain.NewConfigError("validate", outputFile, "output file does not exist")
	}

	expected, err := loadDocument(validationFile)
	if err != nil {
		return Outcome{}, &domain.ConfigError{Op: "validate", Path: validationFile, Err: err}
	}
	actual, err := loadDocument(outputFile)
	if err != nil {
		return Outcome{}, fmt.Errorf("load output %s: %w", outputFile, err)
	}

	outcome := Outcome{
		Match:    cmp.Equal(expected, actual, numericEquality),
		Expected: expected,
		Actual:   actual,
	}
	if !outcome.Match {
		outcome.Diff = cmp.Diff(expected, actual, numericEquality)
	}
	return outcome, nil
}

// numericEquality compares numbers decoded as different Go types (1 and 1.0) by value
var numericEquality = cmp.FilterValues(func(x, y interface{}) bool {
	_, xok := asFloat(x)
	_, yok := asFloat(y)
	return xok && yok && reflect.TypeOf(x) != reflect.TypeOf(y)
}, cmp.Comparer(func(x, y interface{}) bool {
	xf, _ := asFloat(x)
	yf, _ := asFloat(y)
	return xf == yf
}))

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Render formats a decoded document as YAML with four space indentation
func Render(doc interface{}) string {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(4)
	if err := enc.Encode(doc); err != nil {
		return fmt.Sprintf("<unprintable document: %v>", err)
	}
	_ = enc.Close()
	return b.String()
}

func loadDocument(path string) (interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return doc, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
