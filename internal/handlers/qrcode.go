package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
)

// GetCardQRCode handles GET /api/v1/cards/{id}/qrcode?token=...
// Encodes the public card URL as a PNG for print-and-scan sharing. The
// frontend generates a share link first and passes its token here, so the
// scanned URL resolves for anyone holding the code; the token is validated
// against the card before it is embedded. Without a token the QR encodes
// the bare card page, which only renders inside the owner's own session.
func GetCardQRCode(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "id")
	if cardID == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	token := r.URL.Query().Get("token")
	if token != "" {
		if err := checkShareToken(token, cardID); err != nil {
			http.Error(w, "This share link is invalid or has expired.", http.StatusUnauthorized)
			return
		}
	}

	png, err := qrcode.Encode(qrTarget(frontendBaseURL(), cardID, token), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// qrTarget builds the URL a scanned code opens: the same ID-keyed public
// card page the share link points at, with the token when one was given.
func qrTarget(base, cardID, token string) string {
	u := trimRightSlash(base) + "/card/" + cardID
	if token != "" {
		u += "?token=" + token
	}
	return u
}
