package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janhq/search-agent/pkg/telemetry"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, StatusSuccess, Status(false))
	assert.Equal(t, StatusError, Status(true))
}

func TestQueryAttr(t *testing.T) {
	attr := QueryAttr("rust ownership", nil)
	assert.Equal(t, AttrQuery, string(attr.Key))
	assert.Equal(t, "rust ownership", attr.Value.AsString())

	attr = QueryAttr("mail me at jane@example.com", telemetry.NewSanitizer(telemetry.ParsePIILevel("hashed"), "salt"))
	assert.NotContains(t, attr.Value.AsString(), "jane@example.com")
}
