package main

import (
	"bytes"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yodaslang/yodas-api/internal/domain"
)

// newWorkspace writes a config file pointing at a fresh sqlite database
// and returns both paths.
func newWorkspace(t *testing.T) (cfgPath, dbPath string) {
	t.Helper()

	dir := t.TempDir()
	dbPath = filepath.Join(dir, "yodas.db")
	cfgPath = filepath.Join(dir, "config.yaml")

	cfg := fmt.Sprintf(`server:
  log_level: error
database:
  driver: sqlite3
  url: "file:%s?_foreign_keys=on"
auth:
  bcrypt_cost: 4
`, dbPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	return cfgPath, dbPath
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands_EndToEnd(t *testing.T) {
	cfgPath, dbPath := newWorkspace(t)

	_, err := execute(t, "", "--config", cfgPath, "migrate", "up")
	require.NoError(t, err)

	out, err := execute(t, "", "--config", cfgPath, "user", "add", "sensei", "--password", "correct horse battery")
	require.NoError(t, err)
	assert.Contains(t, out, "created user sensei")

	termFile := filepath.Join(filepath.Dir(cfgPath), "words.yaml")
	require.NoError(t, os.WriteFile(termFile, []byte(`
- word: hola
  definition: hello
- word: adiós
  definition: goodbye
`), 0o600))

	out, err = execute(t, "", "--config", cfgPath, "terms", "import", "--lang", "spanish", termFile)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 terms into spanish")

	db, err := sql.Open("sqlite3", "file:"+dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var terms int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM spanishtable").Scan(&terms))
	assert.Equal(t, 2, terms)

	var users int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users WHERE username = 'sensei'").Scan(&users))
	assert.Equal(t, 1, users)
}

func TestTermsImport_FromStdin(t *testing.T) {
	cfgPath, _ := newWorkspace(t)

	_, err := execute(t, "", "--config", cfgPath, "migrate", "up")
	require.NoError(t, err)

	out, err := execute(t, `[{"word": "ねこ", "definition": "cat"}]`,
		"--config", cfgPath, "terms", "import", "--lang", "japanese", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 terms into japanese")
}

func TestTermsImport_RejectsInvalidEntries(t *testing.T) {
	cfgPath, _ := newWorkspace(t)

	_, err := execute(t, "", "--config", cfgPath, "migrate", "up")
	require.NoError(t, err)

	_, err = execute(t, "- word: hola\n  definition: \"\"\n",
		"--config", cfgPath, "terms", "import", "--lang", "spanish", "-")
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestMigrate_RejectsUnknownCommand(t *testing.T) {
	cfgPath, _ := newWorkspace(t)

	_, err := execute(t, "", "--config", cfgPath, "migrate", "sideways")
	assert.Error(t, err)
}

func TestParseTermFile(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []domain.TermEntry
		wantErr string
	}{
		{
			name:  "yaml list",
			input: "- word: hola\n  definition: hello\n",
			want:  []domain.TermEntry{{Word: "hola", Definition: "hello"}},
		},
		{
			name:  "json array",
			input: `[{"word":"gato","definition":"cat"},{"word":"perro","definition":"dog"}]`,
			want: []domain.TermEntry{
				{Word: "gato", Definition: "cat"},
				{Word: "perro", Definition: "dog"},
			},
		},
		{name: "empty input", input: "", wantErr: "term file is empty"},
		{name: "empty list", input: "[]", wantErr: "term file is empty"},
		{name: "unknown key", input: "- word: hola\n  meaning: hello\n", wantErr: "failed to parse term file"},
		{name: "not a list", input: "word: hola\n", wantErr: "failed to parse term file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTermFile(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadPassword(t *testing.T) {
	pw, err := readPassword(strings.NewReader("s3cret pass\r\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret pass", pw)

	pw, err = readPassword(strings.NewReader("no newline"))
	require.NoError(t, err)
	assert.Equal(t, "no newline", pw)

	_, err = readPassword(strings.NewReader("\n"))
	assert.Error(t, err)
}
