package cli

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// restoring the original directory on cleanup. It stands in for t.Chdir,
// which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

// execute runs the CLI with the given args against a fresh root command and
// returns the combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeCSV writes rows (header first) as a CSV file.
func writeCSV(t *testing.T, path string, rows [][]string) {
	t.Helper()
	var b strings.Builder
	w := csv.NewWriter(&b)
	require.NoError(t, w.WriteAll(rows))
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
}

// newEncryptedStore converts a small plaintext fixture in a temp working
// directory and returns the resulting encrypted store path.
func newEncryptedStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)

	writeCSV(t, filepath.Join(dir, "people.csv"), [][]string{
		{"id", "name", "email", "note"},
		{"1", "Alice", "alice@example.com", "first"},
		{"2", "Bob", "bob@example.com", "second"},
	})

	_, err := execute(t, "--plain", "people.csv", "--key", "my_secret_key", "list")
	require.NoError(t, err)

	path := filepath.Join(dir, "people_enc.csv")
	require.FileExists(t, path)
	return path
}
