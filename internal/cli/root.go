package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by every command.
type RootOptions struct {
	Key           string // cipher key, passed on the command line
	KeyFile       string // file supplying the cipher key
	Plain         string // plaintext CSV to convert before attaching
	File          string // existing encrypted store to attach to
	EncryptFields string // comma-separated fields to encrypt; empty = all but identifier
	ConfigPath    string // YAML profile path
	Verbose       bool
	Format        string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the cryptab CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cryptab",
		Short: "CRUD over a field-encrypted CSV store",
		Long: `cryptab keeps tabular records in a comma-delimited text file with chosen
fields encrypted at rest. The first column is the record identifier; it
stays cleartext and doubles as the per-record cipher nonce, so no two
records ever share a keystream.

Point it at an existing encrypted store with --file, or at a plaintext CSV
with --plain to convert it first (writing <name>_enc.csv in the working
directory). A --config profile can carry the store path, key file, and
encrypted-field policy instead of flags.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Plain != "" && opts.File != "" {
				return fmt.Errorf("--plain and --file are mutually exclusive")
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Key, "key", "", "symmetric key for the field cipher")
	cmd.PersistentFlags().StringVar(&opts.KeyFile, "key-file", "", "file containing the symmetric key")
	cmd.PersistentFlags().StringVarP(&opts.Plain, "plain", "f", "", "plaintext CSV to convert into an encrypted store")
	cmd.PersistentFlags().StringVarP(&opts.File, "file", "F", "", "existing encrypted store to use directly")
	cmd.PersistentFlags().StringVar(&opts.EncryptFields, "encrypt-fields", "", "comma-separated fields to encrypt (default: all except the identifier column)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML profile with store, key_file, and encrypt_fields")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
