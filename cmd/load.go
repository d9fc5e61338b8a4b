package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/btraven00/notifyurl/internal/checker"
	"github.com/btraven00/notifyurl/pkg/common"
	"github.com/btraven00/notifyurl/pkg/redact"
	"github.com/btraven00/notifyurl/pkg/urlconfig"
)

var (
	loadFormat      string
	loadTags        []string
	loadShowSecrets bool
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <config>...",
	Short: "Load TEXT or YAML notification configurations",
	Long: `Load reads notification configuration files and lists the URLs they
define, with their tags. The format is detected from the content unless
--format is given; "-" reads standard input.

Each --tag selects URLs carrying all of its comma separated tags; several
--tag flags are alternatives. Without --tag every URL is listed. URLs tagged
"always" are selected by any filter. Include directives are listed but not
followed. URLs are redacted unless --show-secrets is set.

Examples:
  notifyurl load ~/.config/notify.yml
  notifyurl load --tag "ops, pager" --tag devs notify.cfg
  cat notify.cfg | notifyurl load --format text -o json -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVarP(&loadFormat, "format", "f", "", "configuration format (text, yaml); detected when empty")
	loadCmd.Flags().StringArrayVarP(&loadTags, "tag", "g", nil, "select URLs by tag (repeatable)")
	loadCmd.Flags().BoolVar(&loadShowSecrets, "show-secrets", false, "print URLs without redaction")
}

type loadedEntry struct {
	Location string   `json:"location" yaml:"location" toml:"location"`
	Schema   string   `json:"schema" yaml:"schema" toml:"schema"`
	URL      string   `json:"url" yaml:"url" toml:"url"`
	Tags     []string `json:"tags" yaml:"tags" toml:"tags"`
}

type loadedConfig struct {
	Groups   map[string][]string `json:"groups,omitempty" yaml:"groups,omitempty" toml:"groups,omitempty"`
	Source   string              `json:"source" yaml:"source" toml:"source"`
	Format   common.ConfigFormat `json:"format" yaml:"format" toml:"format"`
	Entries  []loadedEntry       `json:"entries" yaml:"entries" toml:"entries"`
	Includes []string            `json:"includes,omitempty" yaml:"includes,omitempty" toml:"includes,omitempty"`
	Warnings []string            `json:"warnings,omitempty" yaml:"warnings,omitempty" toml:"warnings,omitempty"`
}

func runLoad(cmd *cobra.Command, args []string) error {
	var format common.ConfigFormat

	if loadFormat != "" {
		parsed, err := common.ParseConfigFormat(loadFormat)
		if err != nil {
			return err
		}

		format = parsed
	}

	var stdin []byte

	for _, arg := range args {
		if arg == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return errors.Wrap(err, "read standard input")
			}

			stdin = data

			break
		}
	}

	results, _, err := checker.RunBatch(cmd.Context(), appConfig.Workers, args, func(source string) (*urlconfig.Result, error) {
		content := stdin
		if source != "-" {
			data, err := os.ReadFile(source)
			if err != nil {
				return nil, errors.Wrapf(err, "read %s", source)
			}

			content = data
		}

		result, err := urlconfig.Parse(string(content), format)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", source)
		}

		return result, nil
	})
	if err != nil {
		return err
	}

	logic := common.LogicOf(loadTags...)
	if len(loadTags) == 0 {
		logic = common.ParseLogic(common.MatchAllTag)
	}

	loaded := make([]loadedConfig, 0, len(results))
	for i, result := range results {
		loaded = append(loaded, describeConfig(args[i], result, logic))
	}

	return writeConfigs(cmd.OutOrStdout(), loaded)
}

func describeConfig(source string, result *urlconfig.Result, logic common.Logic) loadedConfig {
	cfg := loadedConfig{
		Source:   source,
		Format:   result.Format,
		Includes: result.Includes,
		Groups:   result.Groups,
		Warnings: result.Warnings,
		Entries:  []loadedEntry{},
	}

	for _, warning := range result.Warnings {
		log.Warn().Str("config", source).Msg(warning)
	}

	for _, entry := range result.Select(logic, common.DefaultTagMatcher()) {
		url, err := entry.URL(false)
		if err != nil {
			log.Warn().Str("config", source).Err(err).Msg("cannot render entry")
			continue
		}

		if !loadShowSecrets {
			url = redact.URL(url)
		}

		cfg.Entries = append(cfg.Entries, loadedEntry{
			Location: entryLocation(entry),
			Schema:   entry.Schema,
			URL:      url,
			Tags:     entry.Tags,
		})
	}

	return cfg
}

func entryLocation(entry urlconfig.Entry) string {
	if entry.Line > 0 {
		return fmt.Sprintf("line %d", entry.Line)
	}

	return fmt.Sprintf("entry %d.%d", entry.Index, entry.Item)
}

func writeConfigs(w io.Writer, configs []loadedConfig) error {
	if format := outputFormat(); format != checker.OutputHuman {
		return checker.Encode(w, format, struct {
			Configs []loadedConfig `json:"configs" yaml:"configs" toml:"configs"`
		}{Configs: configs})
	}

	for i, cfg := range configs {
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "📄 %s (%s): %d URL(s)\n", cfg.Source, cfg.Format, len(cfg.Entries))

		for _, entry := range cfg.Entries {
			fmt.Fprintf(w, "   %-12s %s", entry.Location, entry.URL)

			if len(entry.Tags) > 0 {
				fmt.Fprintf(w, " [%s]", strings.Join(entry.Tags, ", "))
			}

			fmt.Fprintln(w)
		}

		for _, include := range cfg.Includes {
			fmt.Fprintf(w, "   ↪ include %s\n", include)
		}
	}

	return nil
}
