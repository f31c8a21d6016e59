package httputil

import (
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/finsearch/pkg/errors"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteJSON(rec, http.StatusCreated, Response{Data: map[string]string{"id": "1"}})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":"1"}}`, rec.Body.String())
}

func TestWriteXML(t *testing.T) {
	type doc struct {
		XMLName xml.Name `xml:"root"`
		Value   string   `xml:"value"`
	}

	rec := httptest.NewRecorder()
	err := WriteXML(rec, http.StatusOK, doc{Value: "hello"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/xml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), xml.Header))
	assert.Contains(t, rec.Body.String(), "<value>hello</value>")
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	WriteError(rec, req, apperrors.NotFound("settings", "5"), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		fallback int
		want     int
		wantOK   bool
	}{
		{"absent uses fallback", "/export", 10, 10, true},
		{"valid value", "/export?start=25", 0, 25, true},
		{"zero", "/export?start=0", 5, 0, true},
		{"negative rejected", "/export?start=-1", 0, 0, false},
		{"non-numeric rejected", "/export?start=abc", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)

			got, ok := ParseIntParam(rec, req, "start", tt.fallback)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, rec.Body.String(), "INVALID_PARAMETER")
			}
		})
	}
}
