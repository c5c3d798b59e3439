// internal/pipeline/nlq/annotate-sentence/models.go
package annotatesentence

import "voucherbot/internal/models"

type Input struct {
	Text string `json:"text"`
}

type Output struct {
	Sentence models.Sentence `json:"sentence"`
	Provider string          `json:"provider"`
}

// remoteResponse is the wire shape of POST /annotate.
type remoteResponse struct {
	Tokens   []models.Token  `json:"tokens"`
	Entities []models.Entity `json:"entities"`
}
