package cmd

import (
	"bufio"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var checkStdin bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <url-or-identifier>...",
	Short: "Check notification URLs and contact identifiers",
	Long: `Check validates notification URLs and the identifiers used inside them.

Targets with a schema are parsed as URLs; the result shows the redacted URL,
the canonical URL rebuilt from the parsed record and warnings for common
arguments (format, overflow) with unknown values. Other targets are
classified as UUID, email, phone number, call sign, IP address or hostname.

Examples:
  notifyurl check json://localhost:8080?format=markdown
  notifyurl check user@example.com +1-800-555-0199 DF1ABC-14
  cat targets.txt | notifyurl check --stdin -o yaml`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkStdin, "stdin", false, "read targets from standard input, one per line")
}

func runCheck(cmd *cobra.Command, args []string) error {
	targets := args

	if checkStdin {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
				targets = append(targets, line)
			}
		}

		if err := scanner.Err(); err != nil {
			return errors.Wrap(err, "read targets")
		}
	}

	if len(targets) == 0 {
		return errors.New("no targets given")
	}

	c, err := newChecker(false)
	if err != nil {
		return err
	}

	results, err := c.CheckAll(cmd.Context(), targets)
	if err != nil {
		return errors.Wrap(err, "check")
	}

	if len(results) == 1 {
		return c.OutputResult(cmd.OutOrStdout(), results[0])
	}

	return c.OutputResults(cmd.OutOrStdout(), results)
}
