package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all records (decrypted view)",
		Long: `List every record in disk order with encrypted fields decrypted.

A field whose stored ciphertext cannot be decoded renders as the
<decryption-error> marker; the rest of the record and the remaining rows
are still shown.

Examples:
  cryptab --file people_enc.csv --key secret list
  cryptab --plain people.csv --key secret list
  cryptab --config people.yaml --key secret list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	sc, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	records, err := sc.Store.List()
	if err != nil {
		return WrapExitError(ExitCommandError, "list records", err)
	}
	formatter.VerboseLog("%d record(s) in %s", len(records), sc.Store.Path())

	if opts.Format == "json" {
		payload := make([]recordPayload, len(records))
		for i, rec := range records {
			payload[i] = newRecordPayload(rec)
		}
		return formatter.Success(payload)
	}

	fields := sc.Store.Fields()
	for _, rec := range records {
		fmt.Fprintln(cmd.OutOrStdout(), formatRecord(fields, rec))
	}
	return nil
}
