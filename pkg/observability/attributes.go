package observability

import (
	"go.opentelemetry.io/otel/attribute"

	"github.com/janhq/search-agent/pkg/telemetry"
)

// Standard attribute keys
const (
	AttrRequestID = "request.id"
	AttrModel     = "llm.model"
	AttrToolName  = "mcp.tool.name"
	AttrAction    = "mcp.action"
	AttrQuery     = "mcp.query"
	AttrStatus    = "status"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Status maps a failure flag onto the status label shared by spans and metrics.
func Status(failed bool) string {
	if failed {
		return StatusError
	}
	return StatusSuccess
}

// QueryAttr returns the query attribute scrubbed according to the sanitizer's PII level.
// A nil sanitizer records the query as-is.
func QueryAttr(query string, sanitizer *telemetry.Sanitizer) attribute.KeyValue {
	if sanitizer != nil {
		query = sanitizer.SanitizePrompt(query)
	}
	return attribute.String(AttrQuery, query)
}
