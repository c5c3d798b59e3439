// internal/models/sentence.go
package models

// LabelDate is the entity category for calendar dates.
const LabelDate = "DATE"

type Token struct {
	Text string `json:"text"`
}

type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Sentence is an annotated input: tokens in order plus recognized entities.
type Sentence struct {
	Tokens   []Token  `json:"tokens"`
	Entities []Entity `json:"entities"`
}

// TokenTexts returns the literal text of each token.
func (s Sentence) TokenTexts() []string {
	out := make([]string, len(s.Tokens))
	for i, t := range s.Tokens {
		out[i] = t.Text
	}
	return out
}
