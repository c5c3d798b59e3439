// pkg/synonyms/schema.go
package synonyms

// Table is the ordered phrase -> column mapping used by field resolution.
// Entry order is significant: in substring mode the first matching entry wins.
type Table struct {
	Version     string  `json:"version"`
	LastUpdated string  `json:"lastUpdated,omitempty"`
	Entries     []Entry `json:"entries"`
}

type Entry struct {
	Phrase string `json:"phrase"`
	Column string `json:"column"`
}

// tableSchema is the JSON Schema every synonym file must satisfy.
const tableSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "entries"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "lastUpdated": {"type": "string"},
    "entries": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["phrase", "column"],
        "additionalProperties": false,
        "properties": {
          "phrase": {"type": "string", "minLength": 1},
          "column": {"type": "string", "pattern": "^[A-Za-z_][A-Za-z0-9_]*$"}
        }
      }
    }
  }
}`
