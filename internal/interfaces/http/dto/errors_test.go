package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeInsufficientBalance))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_NEVER_SEEN"))
}

// Every code the domain can emit must normalize to a wire code with a
// concrete HTTP status, so nothing falls through to a blanket 500.
func TestEveryDomainCodeHasStatus(t *testing.T) {
	for domainCode, wireCode := range LegacyErrorCodeMapping {
		status, ok := ErrorCodeHTTPStatus[wireCode]
		assert.True(t, ok, "domain code %s maps to %s which has no HTTP status", domainCode, wireCode)
		assert.NotEqual(t, 0, status)
	}
}
