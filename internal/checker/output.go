package checker

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how results are rendered.
type OutputFormat string

const (
	OutputHuman OutputFormat = "human"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
	OutputTOML  OutputFormat = "toml"
)

// OutputFormats lists every OutputFormat.
var OutputFormats = []OutputFormat{OutputHuman, OutputJSON, OutputYAML, OutputTOML}

// ParseOutputFormat matches value case-insensitively; empty means human.
func ParseOutputFormat(value string) (OutputFormat, error) {
	normalized := OutputFormat(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return OutputHuman, nil
	}

	for _, format := range OutputFormats {
		if format == normalized {
			return format, nil
		}
	}

	return "", errors.Errorf("unsupported output format: %s", value)
}

// OutputResult writes a single result in the configured format.
func (c *Checker) OutputResult(w io.Writer, result *Result) error {
	if c.config.OutputFormat == OutputHuman {
		return c.outputHuman(w, result)
	}

	return Encode(w, c.config.OutputFormat, result)
}

// OutputResults writes a batch. Structured formats get one document holding
// every result; nil results of a cancelled batch are skipped.
func (c *Checker) OutputResults(w io.Writer, results []*Result) error {
	checked := make([]*Result, 0, len(results))
	for _, result := range results {
		if result != nil {
			checked = append(checked, result)
		}
	}

	if c.config.OutputFormat != OutputHuman {
		return Encode(w, c.config.OutputFormat, struct {
			Results []*Result `json:"results" yaml:"results" toml:"results"`
		}{Results: checked})
	}

	for i, result := range checked {
		if i > 0 {
			fmt.Fprintln(w)
		}

		if err := c.outputHuman(w, result); err != nil {
			return err
		}
	}

	return nil
}

// Encode writes v as JSON, YAML or TOML.
func Encode(w io.Writer, format OutputFormat, v any) error {
	switch format {
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(v)

	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(v); err != nil {
			return errors.Wrap(err, "encode yaml")
		}

		return encoder.Close()

	case OutputTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(v), "encode toml")

	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

func (c *Checker) outputHuman(w io.Writer, result *Result) error {
	fmt.Fprintf(w, "Target: %s\n", result.Target)

	if result.Kind != KindURL {
		status := "✅"
		if !result.Valid {
			status = "❌"
		}

		fmt.Fprintf(w, "%s Type: %s\n", status, result.Kind)

		if result.Identifier != nil {
			fmt.Fprintf(w, "💬 %s\n", result.Identifier.Message)

			if c.config.Verbose {
				writeFields(w, result.Identifier.Details)
			}
		}

		return nil
	}

	if result.Error != "" {
		fmt.Fprintf(w, "❌ Error (%s): %s\n", result.ErrorType, result.Error)
		fmt.Fprintf(w, "🔒 Redacted: %s\n", result.Redacted)

		return nil
	}

	fmt.Fprintf(w, "✅ Status: Valid URL (%v)\n", result.Record["schema"])
	fmt.Fprintf(w, "🔒 Redacted: %s\n", result.Redacted)
	fmt.Fprintf(w, "🔗 Assembled: %s\n", result.Assembled)

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "⚠️  Warning: %s\n", warning)
	}

	if c.config.Verbose {
		fmt.Fprintf(w, "📋 Record:\n")
		writeFields(w, result.Record)
	}

	return nil
}

func writeFields(w io.Writer, fields map[string]any) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(w, "   %s: %v\n", key, fields[key])
	}
}
