package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cryptab/cryptab/internal/config"
	"github.com/cryptab/cryptab/internal/convert"
	"github.com/cryptab/cryptab/internal/table"
)

// defaultDumpTable is the table name used for SQL dumps when neither the
// profile nor --table names one.
const defaultDumpTable = "people_encrypted"

// storeContext is everything a subcommand needs after resolving flags and
// the optional profile: an attached store and the default dump table name.
type storeContext struct {
	Store     *table.Store
	DumpTable string
}

// openStore resolves the root options into an attached store.
//
// Resolution order is flags over profile: the key comes from --key, then
// --key-file, then the profile's key_file; the store comes from --plain
// (converting first), then --file, then the profile's store. Conversion of
// a plaintext source writes <base>_enc.csv in the working directory and
// attaches to it.
func openStore(opts *RootOptions, f *OutputFormatter) (*storeContext, error) {
	var prof config.Profile
	if opts.ConfigPath != "" {
		p, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load profile", err)
		}
		prof = *p
	}

	key, err := resolveKey(opts, &prof)
	if err != nil {
		return nil, err
	}

	encryptFields := splitFields(opts.EncryptFields)
	if encryptFields == nil && len(prof.EncryptFields) > 0 {
		encryptFields = prof.EncryptFields
	}

	var storePath string
	var fields []string
	switch {
	case opts.Plain != "":
		storePath, fields, err = convertSource(opts.Plain, key, encryptFields, f)
		if err != nil {
			return nil, err
		}

	case opts.File != "" || prof.Store != "":
		storePath = opts.File
		if storePath == "" {
			storePath = prof.Store
		}
		fields, err = readHeader(storePath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, NewExitError(ExitCommandError, fmt.Sprintf("encrypted store not found: %s", storePath))
			}
			return nil, WrapExitError(ExitCommandError, "read store header", err)
		}
		if len(fields) == 0 {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("store %s has no header row", storePath))
		}

	default:
		return nil, NewExitError(ExitCommandError, "no store: pass --plain, --file, or a profile with store")
	}

	st, err := table.Open(storePath, fields, key, encryptFields)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open store", err)
	}

	dumpTable := prof.Table
	if dumpTable == "" {
		dumpTable = defaultDumpTable
	}
	return &storeContext{Store: st, DumpTable: dumpTable}, nil
}

// resolveKey picks the cipher key: --key, then --key-file, then the
// profile's key_file. A missing key is a command error; every cipher
// operation needs it and it is never persisted anywhere.
func resolveKey(opts *RootOptions, prof *config.Profile) ([]byte, error) {
	if opts.Key != "" {
		return []byte(opts.Key), nil
	}

	source := *prof
	if opts.KeyFile != "" {
		source = config.Profile{KeyFile: opts.KeyFile}
	}
	key, err := source.Key()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "read key file", err)
	}
	if len(key) == 0 {
		return nil, NewExitError(ExitCommandError, "no key: pass --key, --key-file, or a profile with key_file")
	}
	return key, nil
}

// convertSource converts a plaintext CSV into an encrypted store in the
// working directory and returns the new store path and its header.
func convertSource(src string, key []byte, encryptFields []string, f *OutputFormatter) (string, []string, error) {
	header, err := readHeader(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, NewExitError(ExitCommandError, fmt.Sprintf("plaintext input file not found: %s", src))
		}
		return "", nil, WrapExitError(ExitCommandError, "read input header", err)
	}
	if len(header) == 0 {
		return "", nil, NewExitError(ExitCommandError, fmt.Sprintf("input %s has no header row", src))
	}

	// Default policy: everything but the identifier column.
	if encryptFields == nil {
		encryptFields = header[1:]
	}

	dst := encStorePath(src)
	f.VerboseLog("converting %s -> %s (encrypt fields: %s)", src, dst, strings.Join(encryptFields, ","))

	fields, err := convert.File(src, dst, key, encryptFields, header[0])
	if err != nil {
		return "", nil, WrapExitError(ExitCommandError, "convert", err)
	}
	return dst, fields, nil
}

// encStorePath names the encrypted store produced from a plaintext source:
// the source's base name with an _enc suffix, in the working directory.
func encStorePath(src string) string {
	base := filepath.Base(src)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_enc.csv"
}

// readHeader returns the first CSV row of the file at path, or nil when the
// file is empty.
func readHeader(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	return header, nil
}

// splitFields parses a comma-separated field list, trimming whitespace and
// dropping empty entries. An empty input yields nil, which callers treat as
// "use the default policy".
func splitFields(s string) []string {
	if s == "" {
		return nil
	}
	var fields []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			fields = append(fields, part)
		}
	}
	return fields
}
