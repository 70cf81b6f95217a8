package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cryptab/cryptab/internal/sqldump"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	Table   string
	Out     string
	Dialect string
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump the raw store as an SQL script",
		Long: `Render the store as a drop/create/insert SQL script and write it to a
file. The dump is structural: values go out exactly as stored, ciphertext
included, so the script carries the same confidentiality as the store file.

Use --out - to write the script to stdout instead of a file.

Examples:
  cryptab -F people_enc.csv --key secret dump --table people_encrypted --out dump_encrypted.sql
  cryptab -F people_enc.csv --key secret dump --dialect sqlite --out -`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Table, "table", "", "table name for the SQL dump (default: profile table or people_encrypted)")
	cmd.Flags().StringVar(&opts.Out, "out", "dump_encrypted.sql", "output SQL filename, or - for stdout")
	cmd.Flags().StringVar(&opts.Dialect, "dialect", string(sqldump.DialectMySQL), "SQL dialect (mysql|sqlite)")

	return cmd
}

func runDump(opts *DumpOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	sc, err := openStore(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	tableName := opts.Table
	if tableName == "" {
		tableName = sc.DumpTable
	}

	rows, err := sc.Store.RawRows()
	if err != nil {
		return WrapExitError(ExitCommandError, "read store", err)
	}

	script, err := sqldump.Script(tableName, sc.Store.Fields(), rows, sqldump.Dialect(opts.Dialect))
	if err != nil {
		return WrapExitError(ExitCommandError, "build SQL dump", err)
	}

	if opts.Out == "-" {
		fmt.Fprintln(cmd.OutOrStdout(), script)
		return nil
	}
	if err := os.WriteFile(opts.Out, []byte(script), 0o644); err != nil {
		return WrapExitError(ExitCommandError, "write SQL dump", err)
	}
	formatter.VerboseLog("%d row(s) dumped as table %s", len(rows), tableName)

	if opts.Format == "json" {
		return formatter.Success(map[string]any{"out": opts.Out, "rows": len(rows), "table": tableName})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote SQL dump to %s\n", opts.Out)
	return nil
}
