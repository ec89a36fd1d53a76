package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yodaslang/yodas-api/internal/domain"
	"gopkg.in/yaml.v3"
)

var termsLang string

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Manage language term tables",
}

var termsImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Bulk import terms into a language table",
	Long: `Import a YAML (or JSON) list of {word, definition} entries into the
table of --lang. Use "-" to read from stdin. The import is all or nothing:
one invalid entry rejects the whole file.`,
	Example: `  yodas terms import --lang spanish words.yaml`,
	Args:    cobra.ExactArgs(1),
	RunE:    runTermsImport,
}

func init() {
	termsImportCmd.Flags().StringVar(&termsLang, "lang", "", "target language table")
	_ = termsImportCmd.MarkFlagRequired("lang")

	termsCmd.AddCommand(termsImportCmd)
}

func runTermsImport(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open term file: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	entries, err := parseTermFile(in)
	if err != nil {
		return err
	}

	app, err := loadApplication(cmd.Context())
	if err != nil {
		return err
	}
	defer app.close()

	n, err := app.termService.AddMany(cmd.Context(), termsLang, entries)
	if err != nil {
		return err
	}

	app.logger.Info("terms imported", slog.String("language", termsLang), slog.Int64("count", n))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d terms into %s\n", n, termsLang)
	return nil
}

// parseTermFile decodes a single YAML document holding a list of term
// entries. Unknown keys are rejected.
func parseTermFile(r io.Reader) ([]domain.TermEntry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var entries []domain.TermEntry
	if err := dec.Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("term file is empty")
		}
		return nil, fmt.Errorf("failed to parse term file: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("term file is empty")
	}
	return entries, nil
}
