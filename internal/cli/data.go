package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cryptab/cryptab/internal/table"
)

// parseKeyValuePairs parses "k1=v1,k2=v2" into a map. Pairs split on the
// first '=' so values may contain '='; values cannot contain commas. Parts
// without '=' are ignored. Keys and values are whitespace-trimmed.
func parseKeyValuePairs(s string) map[string]string {
	pairs := make(map[string]string)
	if s == "" {
		return pairs
	}
	for _, part := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		pairs[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return pairs
}

// recordPayload is the JSON shape of one decrypted record.
type recordPayload struct {
	Fields map[string]string `json:"fields"`
	Faults map[string]string `json:"faults,omitempty"`
}

func newRecordPayload(rec table.Record) recordPayload {
	p := recordPayload{Fields: rec.Fields}
	if len(rec.Faults) > 0 {
		p.Faults = make(map[string]string, len(rec.Faults))
		for name, err := range rec.Faults {
			p.Faults[name] = err.Error()
		}
	}
	return p
}

// formatRecord renders one record as a single text line in schema order.
// Fields that failed to decrypt already hold the decryption marker.
func formatRecord(fields []string, rec table.Record) string {
	parts := make([]string, len(fields))
	for i, name := range fields {
		parts[i] = fmt.Sprintf("%s=%s", name, rec.Fields[name])
	}
	return strings.Join(parts, ", ")
}

// sortedKeys returns the keys of m in sorted order, for stable diagnostics.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
