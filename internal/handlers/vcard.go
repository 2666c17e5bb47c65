package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/cache"
	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/db"
	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/models"
)

// DownloadVCard handles GET /api/v1/cards/{id}/vcard?token=...
// Serves the card as a downloadable .vcf contact file. Uses the same share
// token as the public card page, so anyone holding a valid link can save
// the contact.
func DownloadVCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	if err := checkShareToken(r.URL.Query().Get("token"), id); err != nil {
		http.Error(w, "This share link is invalid or has expired.", http.StatusUnauthorized)
		return
	}

	card, hit := cache.GetCard(r.Context(), id)
	if !hit {
		if err := db.DB.Where("id = ?", id).First(&card).Error; err != nil {
			http.Error(w, "card not found", http.StatusNotFound)
			return
		}
		cache.SetCard(r.Context(), card)
	}

	vcf := EncodeVCard(card)
	w.Header().Set("Content-Type", "text/vcard; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+card.Slug+`.vcf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(vcf))
}

// checkShareToken validates a share JWT and that it was minted for cardID.
func checkShareToken(tokenStr, cardID string) error {
	if tokenStr == "" {
		return errors.New("missing token")
	}
	secret, err := getShareSecret()
	if err != nil {
		return err
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, &shareClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return errors.New("invalid token")
	}
	claims, ok := parsed.Claims.(*shareClaims)
	if !ok || claims.CardID == "" || claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		return errors.New("expired token")
	}
	if claims.CardID != cardID {
		return errors.New("id mismatch")
	}
	return nil
}

// EncodeVCard renders a card as a vCard 3.0 document with CRLF line
// endings. Empty fields are skipped entirely.
func EncodeVCard(card models.Card) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	line("BEGIN:VCARD")
	line("VERSION:3.0")
	line("FN:" + escapeVCard(card.Name))
	names := strings.SplitN(card.Name, " ", 2)
	if len(names) == 2 {
		line("N:" + escapeVCard(names[1]) + ";" + escapeVCard(names[0]) + ";;;")
	} else {
		line("N:" + escapeVCard(card.Name) + ";;;;")
	}
	if card.Company != "" {
		line("ORG:" + escapeVCard(card.Company))
	}
	if card.Phone != "" {
		line("TEL;TYPE=WORK,VOICE:" + escapeVCard(card.Phone))
	}
	if card.Email != "" {
		line("EMAIL;TYPE=WORK:" + escapeVCard(card.Email))
	}
	if card.Address != "" {
		line("ADR;TYPE=WORK:;;" + escapeVCard(card.Address) + ";;;;")
	}
	if card.Services != "" {
		line("NOTE:" + escapeVCard(card.Services))
	}
	line("END:VCARD")
	return b.String()
}

// escapeVCard escapes the characters vCard 3.0 reserves in text values.
func escapeVCard(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return strings.ReplaceAll(s, "\r", "")
}
