// internal/pipeline/nlq/resolve-field/models.go
package resolvefield

type Input struct {
	Text string `json:"text"`
}

type Output struct {
	Column  string `json:"column,omitempty"`
	Phrase  string `json:"phrase,omitempty"`
	Matched bool   `json:"matched"`
}

// compiledEntry is a synonym entry prepared for matching.
type compiledEntry struct {
	phrase string   // lower-cased
	words  []string // phrase tokens, for word mode
	column string
}
