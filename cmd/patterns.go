package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/btraven00/notifyurl/internal/checker"
	"github.com/btraven00/notifyurl/pkg/extractor"
)

var showExamples bool

// patternsCmd represents the patterns command
var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the token kinds understood by extract",
	Long: `The patterns command lists the token families that "notifyurl extract"
can split text into, with their aliases and, optionally, sample inputs.

Examples:
  notifyurl patterns                      # List all token kinds
  notifyurl patterns --examples           # Show sample inputs
  notifyurl patterns -o json              # Output as JSON`,
	Args: cobra.NoArgs,
	RunE: runPatterns,
}

func init() {
	rootCmd.AddCommand(patternsCmd)

	patternsCmd.Flags().BoolVar(&showExamples, "examples", false, "show sample inputs for every kind")
}

type patternInfo struct {
	Name        string         `json:"name" yaml:"name" toml:"name"`
	Kind        extractor.Kind `json:"kind" yaml:"kind" toml:"kind"`
	Description string         `json:"description" yaml:"description" toml:"description"`
	Aliases     []string       `json:"aliases" yaml:"aliases" toml:"aliases"`
	Examples    []string       `json:"examples" yaml:"examples" toml:"examples"`
}

func runPatterns(cmd *cobra.Command, _ []string) error {
	patterns := extractor.Patterns()

	info := make([]patternInfo, 0, len(patterns))
	for _, p := range patterns {
		info = append(info, patternInfo{
			Name:        p.Name,
			Kind:        p.Kind,
			Description: p.Description,
			Aliases:     p.Aliases,
			Examples:    p.Examples,
		})
	}

	out := cmd.OutOrStdout()

	if format := outputFormat(); format != checker.OutputHuman {
		return checker.Encode(out, format, struct {
			Patterns []patternInfo `json:"patterns" yaml:"patterns" toml:"patterns"`
			Count    int           `json:"count" yaml:"count" toml:"count"`
		}{Patterns: info, Count: len(info)})
	}

	fmt.Fprintf(out, "Available Token Kinds (%d):\n\n", len(info))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tALIASES\tDESCRIPTION")
	fmt.Fprintln(w, "----\t-------\t-----------")

	for _, p := range info {
		desc := p.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}

		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Kind, strings.Join(p.Aliases, ", "), desc)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if showExamples {
		fmt.Fprintln(out)

		for _, p := range info {
			fmt.Fprintf(out, "🔎 %s\n", p.Name)

			for _, example := range p.Examples {
				fmt.Fprintf(out, "   • %s\n", example)
			}
		}
	}

	return nil
}
