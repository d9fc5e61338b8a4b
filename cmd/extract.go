package cmd

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/btraven00/notifyurl/internal/checker"
	"github.com/btraven00/notifyurl/internal/config"
	"github.com/btraven00/notifyurl/pkg/extractor"
)

var (
	extractKind     string
	extractValidate bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [text...]",
	Short: "Split free-form text into URLs, emails, phone numbers or call signs",
	Long: `Extract splits blobs holding several targets into individual tokens.

Entries are separated by commas and whitespace, but only where the next
entry visibly starts, so commas inside query arguments and the space between
a display name and its address are kept. Text is read from the arguments,
or from standard input when none are given.

Kinds: url (default), email, phone, call_sign. See "notifyurl patterns".

Examples:
  notifyurl extract "json://localhost, mailto://user@example.com"
  notifyurl extract --kind email "Chuck Norris roundhouse@kick.com, user@example.com"
  notifyurl extract --kind phone --prefix --validate "sms:+1 (800) 123-4567, 12345678901"`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	defaults := extractor.DefaultOptions()
	flags := extractCmd.Flags()
	flags.StringVarP(&extractKind, "kind", "k", string(extractor.KindURL), "token kind (url, email, phone, call_sign)")
	flags.Bool("store-unparseable", defaults.StoreUnparseable, "keep the pieces of text that hold no token")
	flags.Bool("prefix", defaults.Prefix, "allow a 'label:' prefix on phone numbers")
	flags.BoolVar(&extractValidate, "validate", false, "validate every token")

	cobra.CheckErr(settings.BindPFlag(config.KeyStoreUnparseable, flags.Lookup("store-unparseable")))
	cobra.CheckErr(settings.BindPFlag(config.KeyPhonePrefix, flags.Lookup("prefix")))
}

func runExtract(cmd *cobra.Command, args []string) error {
	pattern, ok := extractor.Lookup(extractKind)
	if !ok {
		return errors.Errorf("unknown kind %q; see \"notifyurl patterns\"", extractKind)
	}

	values := args
	if len(values) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.Wrap(err, "read standard input")
		}

		values = []string{string(data)}
	}

	tokens := pattern.Scan(appConfig.Extract, values...)

	w := cmd.OutOrStdout()

	if format := outputFormat(); format != checker.OutputHuman {
		return checker.Encode(w, format, struct {
			Tokens []extractor.Token `json:"tokens" yaml:"tokens" toml:"tokens"`
		}{Tokens: tokens})
	}

	for _, token := range tokens {
		if !extractValidate {
			fmt.Fprintln(w, token.Value)
			continue
		}

		status := "✅"
		if !token.Valid {
			status = "❌"
		}

		fmt.Fprintf(w, "%s %s\n", status, token.Value)
	}

	return nil
}
