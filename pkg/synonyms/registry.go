// pkg/synonyms/registry.go
package synonyms

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Load reads and validates a synonym file. An empty path yields Default().
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse validates data against the synonym schema and decodes it.
func Parse(data []byte) (*Table, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks data against the synonym schema and reports every
// violation in one error.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(tableSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("synonym file is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("synonym file failed validation: %s", strings.Join(msgs, "; "))
}

// Columns returns the distinct target columns in first-seen order.
func (t *Table) Columns() []string {
	seen := make(map[string]bool, len(t.Entries))
	out := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		if !seen[e.Column] {
			seen[e.Column] = true
			out = append(out, e.Column)
		}
	}
	return out
}

func (t *Table) Len() int {
	return len(t.Entries)
}
