package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess_EmptyListIsKept(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, []string{})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":200,"data":[]}`, rec.Body.String())
}

func TestNotFound_DefaultAndCustomMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec)
	assert.JSONEq(t, `{"status":404,"message":"Not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	NotFound(rec, "order 9 not found")
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "order 9 not found", env.Message)
	assert.Nil(t, env.Data)
}

func TestBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "invalid path parameter", map[string]string{"orderId": "must be a positive integer"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":400,"message":"invalid path parameter","errors":{"orderId":"must be a positive integer"}}`, rec.Body.String())
}

func TestInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	InternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}
