package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func qrRequest(t *testing.T, cardID, token string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/api/v1/cards/{id}/qrcode", GetCardQRCode)

	url := "/api/v1/cards/" + cardID + "/qrcode"
	if token != "" {
		url += "?token=" + token
	}
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetCardQRCode_WithValidToken(t *testing.T) {
	t.Setenv("SHARE_TOKEN_SECRET", "s3cret")
	tok := mintShareToken(t, "s3cret", "card-1", time.Hour)

	w := qrRequest(t, "card-1", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestGetCardQRCode_RejectsTokenForOtherCard(t *testing.T) {
	t.Setenv("SHARE_TOKEN_SECRET", "s3cret")
	tok := mintShareToken(t, "s3cret", "card-1", time.Hour)

	w := qrRequest(t, "card-2", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetCardQRCode_WithoutToken(t *testing.T) {
	w := qrRequest(t, "card-1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestQRTarget_EmbedsTokenAndID(t *testing.T) {
	assert.Equal(t, "http://x.example/card/card-1?token=tok",
		qrTarget("http://x.example/", "card-1", "tok"))
	assert.Equal(t, "http://x.example/card/card-1",
		qrTarget("http://x.example", "card-1", ""))
}
