// internal/pipeline/nlq/annotate-sentence/rules.go
package annotatesentence

import (
	"regexp"

	"voucherbot/internal/models"
)

var (
	tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+|[^\s\p{L}\p{N}_]`)

	datePattern = func() *regexp.Regexp {
		month := `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?`
		day := `\d{1,2}(?:st|nd|rd|th)?`
		dayMonthYear := day + `\s+` + month + `,?\s+\d{4}`
		monthDayYear := month + `\s+` + day + `,?\s+\d{4}`
		iso := `\d{4}-\d{2}-\d{2}`
		return regexp.MustCompile(`(?i)\b(?:` + dayMonthYear + `|` + monthDayYear + `|` + iso + `)\b`)
	}()
)

// AnnotateRules tokenizes text and tags calendar dates without any external
// service. Tokens are runs of letters, digits and underscores, or single
// punctuation characters, so "TXN_2024001?" yields "TXN_2024001" and "?".
func AnnotateRules(text string) models.Sentence {
	words := tokenPattern.FindAllString(text, -1)
	tokens := make([]models.Token, len(words))
	for i, w := range words {
		tokens[i] = models.Token{Text: w}
	}

	var entities []models.Entity
	for _, m := range datePattern.FindAllString(text, -1) {
		entities = append(entities, models.Entity{Text: m, Label: models.LabelDate})
	}

	return models.Sentence{Tokens: tokens, Entities: entities}
}
