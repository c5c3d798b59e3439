// internal/pipeline/chat/route-response/models.go
package routeresponse

import (
	"voucherbot/internal/models"
	buildquery "voucherbot/internal/pipeline/nlq/build-query"
)

type Route string

const (
	RouteLLM   Route = "llm"
	RouteQuery Route = "query"
)

type Input struct {
	Message string `json:"msg"`
}

type Output struct {
	Response string `json:"response"`
	Route    Route  `json:"route"`
	// ErrorCode is set when Response is a degraded error reply.
	ErrorCode string `json:"errorCode,omitempty"`
}

// Plan is the query route's work before storage runs.
type Plan struct {
	Text     string              `json:"text"`
	Field    string              `json:"field,omitempty"`
	Provider string              `json:"annotator"`
	Intent   models.ParsedIntent `json:"intent"`
	Query    *buildquery.Output  `json:"query,omitempty"`
}
