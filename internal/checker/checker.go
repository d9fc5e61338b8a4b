package checker

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/btraven00/notifyurl/pkg/common"
	"github.com/btraven00/notifyurl/pkg/redact"
	"github.com/btraven00/notifyurl/pkg/urlparse"
	"github.com/btraven00/notifyurl/pkg/validators"
)

// KindURL is the Result.Kind of targets carrying a scheme.
const KindURL = "url"

var schemeRE = regexp.MustCompile(`(?i)^\s*[a-z0-9+.-]+://`)

// Config holds configuration for the checker.
type Config struct {
	Logger       zerolog.Logger
	OutputFormat OutputFormat
	ParseOptions urlparse.Options
	Classify     validators.ClassifyOptions
	Workers      int
	Verbose      bool
	// URLOnly parses every target as a URL, falling back to the default
	// schema, instead of classifying bare identifiers.
	URLOnly bool
}

// DefaultConfig parses with the package defaults and renders human output.
func DefaultConfig() Config {
	return Config{
		Logger:       zerolog.Nop(),
		OutputFormat: OutputHuman,
		ParseOptions: urlparse.DefaultOptions(),
		Classify:     validators.DefaultClassifyOptions(),
		Workers:      DefaultWorkers,
	}
}

// Result represents the result of checking a notification URL or a bare
// identifier.
type Result struct {
	Record     map[string]any               `json:"record,omitempty" yaml:"record,omitempty" toml:"record,omitempty"`
	Identifier *validators.ValidationResult `json:"identifier,omitempty" yaml:"identifier,omitempty" toml:"identifier,omitempty"`
	Target     string                       `json:"target" yaml:"target" toml:"target"`
	Kind       string                       `json:"kind" yaml:"kind" toml:"kind"`
	Redacted   string                       `json:"redacted,omitempty" yaml:"redacted,omitempty" toml:"redacted,omitempty"`
	Assembled  string                       `json:"assembled,omitempty" yaml:"assembled,omitempty" toml:"assembled,omitempty"`
	Error      string                       `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	ErrorType  string                       `json:"error_type,omitempty" yaml:"error_type,omitempty" toml:"error_type,omitempty"`
	Warnings   []string                     `json:"warnings,omitempty" yaml:"warnings,omitempty" toml:"warnings,omitempty"`
	Valid      bool                         `json:"valid" yaml:"valid" toml:"valid"`
}

// Checker inspects notification URLs and identifiers.
type Checker struct {
	log    zerolog.Logger
	config Config
}

// New creates a new Checker instance.
func New(config Config) *Checker {
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}

	if config.OutputFormat == "" {
		config.OutputFormat = OutputHuman
	}

	return &Checker{
		config: config,
		log:    config.Logger.With().Str("component", "checker").Logger(),
	}
}

// Check parses target as a URL when it carries a scheme and classifies it
// as a bare identifier otherwise. A target that fails to parse is reported
// in the result; only an empty target is an error.
func (c *Checker) Check(target string) (*Result, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, errors.New("empty target")
	}

	if !c.config.URLOnly && !schemeRE.MatchString(target) {
		return c.checkIdentifier(target), nil
	}

	result := &Result{
		Target:   target,
		Kind:     KindURL,
		Redacted: redact.URL(target),
	}

	rec, err := urlparse.Parse(target, c.config.ParseOptions)
	if err != nil {
		result.Error = err.Error()

		var parseErr *urlparse.ParseError
		if errors.As(err, &parseErr) {
			result.ErrorType = string(parseErr.Type)
		}

		c.log.Debug().Str("target", result.Redacted).Err(err).Msg("unparseable URL")

		return result, nil
	}

	result.Valid = true
	result.Record = rec.Compact()
	result.Assembled = urlparse.Assemble(rec.Fields(), false)
	result.Warnings = commonArgWarnings(rec.QSD)

	c.log.Debug().
		Str("target", result.Redacted).
		Str("schema", rec.Schema).
		Int("warnings", len(result.Warnings)).
		Msg("parsed URL")

	return result, nil
}

func (c *Checker) checkIdentifier(target string) *Result {
	classified := validators.Classify(target, c.config.Classify)

	c.log.Debug().Str("type", classified.Type).Bool("valid", classified.Valid).Msg("classified identifier")

	return &Result{
		Target:     target,
		Kind:       classified.Type,
		Valid:      classified.Valid,
		Identifier: &classified,
	}
}

// commonArgWarnings checks the query arguments every notification service
// understands against their closed sets of values.
func commonArgWarnings(qsd map[string]string) []string {
	checks := map[string]func(string) error{
		"format": func(v string) error {
			_, err := common.ParseNotifyFormat(v)
			return err
		},
		"overflow": func(v string) error {
			_, err := common.ParseOverflowMode(v)
			return err
		},
	}

	keys := make([]string, 0, len(checks))
	for key := range checks {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var warnings []string

	for _, key := range keys {
		value, ok := qsd[key]
		if !ok {
			continue
		}

		if err := checks[key](value); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	return warnings
}

// CheckAll checks targets on a worker pool and returns their results in
// input order. Cancelling ctx stops the batch; targets that were not
// checked have nil results.
func (c *Checker) CheckAll(ctx context.Context, targets []string) ([]*Result, error) {
	results, stats, err := RunBatch(ctx, c.config.Workers, targets, c.Check)

	c.log.Debug().
		Int("total", stats.TotalTasks).
		Int("completed", stats.CompletedTasks).
		Int("workers", stats.NumWorkers).
		Msg("batch finished")

	return results, err
}
