package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cryptab/cryptab/internal/table"
)

func TestParseKeyValuePairs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "simple pairs",
			input: "id=3,name=Charlie",
			want:  map[string]string{"id": "3", "name": "Charlie"},
		},
		{
			name:  "empty input",
			input: "",
			want:  map[string]string{},
		},
		{
			name:  "value containing equals",
			input: "note=a=b,name=x",
			want:  map[string]string{"note": "a=b", "name": "x"},
		},
		{
			name:  "whitespace trimmed",
			input: " id = 3 , name = Ann ",
			want:  map[string]string{"id": "3", "name": "Ann"},
		},
		{
			name:  "parts without equals ignored",
			input: "id=1,bogus,name=Bo",
			want:  map[string]string{"id": "1", "name": "Bo"},
		},
		{
			name:  "empty value kept",
			input: "id=1,note=",
			want:  map[string]string{"id": "1", "note": ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseKeyValuePairs(tt.input))
		})
	}
}

func TestFormatRecordSchemaOrder(t *testing.T) {
	rec := table.Record{Fields: map[string]string{"id": "1", "name": "Ann", "note": "x"}}
	got := formatRecord([]string{"id", "name", "note"}, rec)
	assert.Equal(t, "id=1, name=Ann, note=x", got)
}

func TestSplitFields(t *testing.T) {
	assert.Nil(t, splitFields(""))
	assert.Equal(t, []string{"name", "email"}, splitFields("name, email"))
	assert.Equal(t, []string{"a"}, splitFields(",a,,"))
}

func TestEncStorePath(t *testing.T) {
	assert.Equal(t, "people_enc.csv", encStorePath("people.csv"))
	assert.Equal(t, "people_enc.csv", encStorePath("/data/in/people.csv"))
	assert.Equal(t, "input_plain_enc.csv", encStorePath("input_plain.csv"))
}
