// Package config loads table profiles from YAML.
//
// A profile bundles the flags a store needs on every invocation (path, key
// source, encrypted-field policy) so the CLI can attach with a single
// --config argument. Explicit flags always win over profile values.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile describes a store the CLI can attach to.
type Profile struct {
	// Store is the path to the encrypted store file.
	Store string `yaml:"store"`

	// KeyFile is a file whose contents (trailing newline trimmed) supply
	// the cipher key. The key itself never appears in a profile: profiles
	// are expected to be committed or shared, key files are not.
	KeyFile string `yaml:"key_file,omitempty"`

	// EncryptFields lists the fields stored encrypted. Empty means the
	// default policy: every field except the identifier column.
	EncryptFields []string `yaml:"encrypt_fields,omitempty"`

	// Table is the default table name for SQL dumps.
	Table string `yaml:"table,omitempty"`
}

// Load reads a profile from path. Unknown keys are rejected so a typo in a
// profile fails loudly instead of silently falling back to defaults.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read profile: %w", err)
	}

	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("config: parse profile %s: %w", path, err)
	}
	return &p, nil
}

// Key resolves the cipher key bytes from KeyFile. Returns nil when the
// profile names no key file.
func (p *Profile) Key() ([]byte, error) {
	if p.KeyFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(p.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("config: read key file: %w", err)
	}
	return bytes.TrimRight(data, "\r\n"), nil
}
