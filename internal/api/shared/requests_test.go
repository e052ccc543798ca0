package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type confirmBody struct {
	Skip *bool `json:"skip" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"skip":true}`))
		var body confirmBody
		require.NoError(t, DecodeJSON(req, &body))
		require.NotNil(t, body.Skip)
		assert.True(t, *body.Skip)
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		var body confirmBody
		require.NoError(t, DecodeJSON(req, &body))
		assert.Nil(t, body.Skip)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"skip":`))
		var body confirmBody
		assert.Error(t, DecodeJSON(req, &body))
	})
}

func TestValidateRequest(t *testing.T) {
	yes := true
	assert.NoError(t, ValidateRequest(&confirmBody{Skip: &yes}))
	assert.Error(t, ValidateRequest(&confirmBody{}))
}
