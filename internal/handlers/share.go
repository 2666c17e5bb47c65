package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/cache"
	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/db"
	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/models"
)

type shareClaims struct {
	CardID string `json:"card_id"`
	jwt.RegisteredClaims
}

type generateShareLinkResp struct {
	ShareableURL string `json:"shareable_url"`
}

func getShareSecret() ([]byte, error) {
	if s := os.Getenv("SHARE_TOKEN_SECRET"); s != "" {
		return []byte(s), nil
	}
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s), nil
	}
	return nil, errors.New("missing SHARE_TOKEN_SECRET/JWT_SECRET")
}

// GenerateShareLink handles POST /api/v1/cards/generate-share-link
func GenerateShareLink(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	owner := ownerEmail(r)
	if owner == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Be liberal in what we accept from the frontend
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	cardID := ""
	if v, ok := payload["card_id"].(string); ok {
		cardID = strings.TrimSpace(v)
	} else if v, ok := payload["cardId"].(string); ok { // optional camelCase fallback
		cardID = strings.TrimSpace(v)
	}
	if cardID == "" {
		http.Error(w, "card_id is required", http.StatusBadRequest)
		return
	}

	// expires_in_hours may come as number or string, and snake_case or camelCase
	parseHours := func(x any) (int, bool) {
		switch t := x.(type) {
		case float64:
			return int(t), true
		case json.Number:
			if i, err := strconv.Atoi(t.String()); err == nil {
				return i, true
			}
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				return i, true
			}
		}
		return 0, false
	}
	expires := 0
	for _, key := range []string{"expires_in_hours", "expiresInHours", "duration"} {
		if v, ok := payload[key]; ok {
			if i, ok2 := parseHours(v); ok2 {
				expires = i
				break
			}
		}
	}
	// Enforce 1..168 hours to avoid immediately-expired tokens
	if expires < 1 || expires > 168 {
		http.Error(w, "expires_in_hours must be between 1 and 168", http.StatusBadRequest)
		return
	}

	// Verify ownership: card must belong to this user
	var card models.Card
	if err := db.DB.Where("id = ?", cardID).First(&card).Error; err != nil {
		http.Error(w, "card not found", http.StatusNotFound)
		return
	}
	if card.OwnerEmail == "" || !strings.EqualFold(card.OwnerEmail, owner) {
		http.Error(w, "forbidden: not owner of card", http.StatusForbidden)
		return
	}

	secret, err := getShareSecret()
	if err != nil {
		http.Error(w, "server misconfigured", http.StatusInternalServerError)
		return
	}

	exp := time.Now().Add(time.Duration(expires) * time.Hour)
	claims := shareClaims{
		CardID: cardID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		http.Error(w, "failed to sign share token", http.StatusInternalServerError)
		return
	}

	url := shareLinkURL(frontendBaseURL(), card.ID, signed)
	_ = json.NewEncoder(w).Encode(generateShareLinkResp{ShareableURL: url})
}

func frontendBaseURL() string {
	if base := os.Getenv("FRONTEND_BASE_URL"); base != "" {
		return base
	}
	return "http://localhost:3000"
}

// shareLinkURL builds the public share URL. The path segment must be the
// card ID, not the slug: the public card-info endpoint is keyed by ID and
// rejects tokens minted for any other ID.
func shareLinkURL(base, cardID, token string) string {
	return fmt.Sprintf("%s/card/%s?token=%s", trimRightSlash(base), cardID, token)
}

// GetCardInfo handles GET /api/v1/card-info/{id}?token=...
// Public endpoint backing the shared-card page.
func GetCardInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "This share link is invalid or has expired.", http.StatusUnauthorized)
		return
	}

	secret, err := getShareSecret()
	if err != nil {
		http.Error(w, "server misconfigured", http.StatusInternalServerError)
		return
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &shareClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		http.Error(w, "This share link is invalid or has expired.", http.StatusUnauthorized)
		return
	}
	claims, ok := parsed.Claims.(*shareClaims)
	if !ok || claims.CardID == "" || claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		http.Error(w, "This share link is invalid or has expired.", http.StatusUnauthorized)
		return
	}
	if claims.CardID != id {
		http.Error(w, "forbidden: id mismatch", http.StatusForbidden)
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

	_ = json.NewEncoder(w).Encode(map[string]any{
		"card":        publicCardView(card),
		"valid_until": claims.ExpiresAt.Time,
	})
}

// publicCardView strips owner-only fields before the card leaves the server.
func publicCardView(card models.Card) map[string]any {
	return map[string]any{
		"id":         card.ID,
		"slug":       card.Slug,
		"name":       card.Name,
		"company":    card.Company,
		"phone":      card.Phone,
		"email":      card.Email,
		"services":   card.Services,
		"address":    card.Address,
		"avatar_url": card.AvatarURL,
	}
}

func trimRightSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
