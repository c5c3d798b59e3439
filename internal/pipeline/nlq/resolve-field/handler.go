// internal/pipeline/nlq/resolve-field/handler.go
package resolvefield

import (
	"regexp"
	"strings"

	"voucherbot/pkg/synonyms"
)

const (
	StageName = "resolve-field"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Handler maps free text to a voucher column through the synonym table. It
// holds no mutable state and is safe for concurrent use.
type Handler struct {
	config  *Config
	entries []compiledEntry
}

func NewHandler(config *Config, table *synonyms.Table) *Handler {
	entries := make([]compiledEntry, 0, table.Len())
	for _, e := range table.Entries {
		phrase := strings.ToLower(e.Phrase)
		entries = append(entries, compiledEntry{
			phrase: phrase,
			words:  wordPattern.FindAllString(phrase, -1),
			column: e.Column,
		})
	}
	return &Handler{config: config, entries: entries}
}

// Resolve returns the column for text, or ok == false when no phrase
// matches.
func (h *Handler) Resolve(text string) (column string, ok bool) {
	out := h.Execute(&Input{Text: text})
	return out.Column, out.Matched
}

func (h *Handler) Execute(input *Input) *Output {
	lowered := strings.ToLower(input.Text)

	var match *compiledEntry
	if h.config.Mode == ModeWord {
		match = h.matchWords(lowered)
	} else {
		match = h.matchSubstring(lowered)
	}

	if match == nil {
		return &Output{}
	}
	return &Output{Column: match.column, Phrase: match.phrase, Matched: true}
}

func (h *Handler) matchSubstring(lowered string) *compiledEntry {
	for i := range h.entries {
		if strings.Contains(lowered, h.entries[i].phrase) {
			return &h.entries[i]
		}
	}
	return nil
}

func (h *Handler) matchWords(lowered string) *compiledEntry {
	tokens := wordPattern.FindAllString(lowered, -1)

	var best *compiledEntry
	for i := range h.entries {
		e := &h.entries[i]
		if len(e.words) == 0 || !containsSequence(tokens, e.words) {
			continue
		}
		if best == nil || len(e.phrase) > len(best.phrase) {
			best = e
		}
	}
	return best
}

func containsSequence(tokens, seq []string) bool {
	for start := 0; start+len(seq) <= len(tokens); start++ {
		matched := true
		for j := range seq {
			if tokens[start+j] != seq[j] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}
