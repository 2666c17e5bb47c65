package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/cache"
	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/db"
	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/models"
)

// ownerEmail resolves the acting user. Full authentication is out of scope;
// the frontend identifies its user via this header.
func ownerEmail(r *http.Request) string {
	return strings.ToLower(strings.TrimSpace(r.Header.Get("X-Owner-Email")))
}

// CreateCard handles POST /api/v1/cards
func CreateCard(w http.ResponseWriter, r *http.Request) {
	log.Println("CreateCard called")
	owner := ownerEmail(r)
	if owner == "" {
		http.Error(w, "X-Owner-Email header is required", http.StatusBadRequest)
		return
	}

	// Be liberal in what we accept from the frontend
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	str := func(k string) string {
		v, _ := body[k].(string)
		return strings.TrimSpace(v)
	}

	name := str("name")
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	slug := str("slug")
	if slug == "" {
		slug = slugify(name) + "-" + uuid.NewString()[:8]
	}

	// If a card already exists for this owner+slug, return it (idempotent)
	var existing models.Card
	err := db.DB.Where("owner_email = ? AND slug = ?", owner, slug).First(&existing).Error
	if err == nil {
		writeJSONResp(w, http.StatusOK, existing)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}

	card := models.Card{
		ID:         uuid.NewString(),
		OwnerEmail: owner,
		Slug:       slug,
		Name:       name,
		Company:    str("company"),
		Phone:      str("phone"),
		Email:      str("email"),
		Services:   str("services"),
		Address:    str("address"),
		AvatarURL:  str("avatar_url"),
		Plan:       "free",
	}
	if err := db.DB.Create(&card).Error; err != nil {
		http.Error(w, "failed to create card", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusCreated, card)
}

// GetCard handles GET /api/v1/cards/{id} (owner view)
func GetCard(w http.ResponseWriter, r *http.Request) {
	owner := ownerEmail(r)
	id := chi.URLParam(r, "id")
	var card models.Card
	res := db.DB.Where("id = ?", id).First(&card)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		writeJSONResp(w, http.StatusNotFound, map[string]string{"error": "card not found"})
		return
	} else if res.Error != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	if !strings.EqualFold(card.OwnerEmail, owner) {
		http.Error(w, "forbidden: not owner of card", http.StatusForbidden)
		return
	}
	writeJSONResp(w, http.StatusOK, card)
}

// ListCards handles GET /api/v1/cards (owner's cards)
func ListCards(w http.ResponseWriter, r *http.Request) {
	owner := ownerEmail(r)
	if owner == "" {
		http.Error(w, "X-Owner-Email header is required", http.StatusBadRequest)
		return
	}
	var cards []models.Card
	if err := db.DB.Where("owner_email = ?", owner).Order("created_at desc").Find(&cards).Error; err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusOK, cards)
}

// UpdateCard handles PATCH /api/v1/cards/{id}
func UpdateCard(w http.ResponseWriter, r *http.Request) {
	owner := ownerEmail(r)
	id := chi.URLParam(r, "id")

	var card models.Card
	res := db.DB.Where("id = ?", id).First(&card)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		writeJSONResp(w, http.StatusNotFound, map[string]string{"error": "card not found"})
		return
	} else if res.Error != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	if !strings.EqualFold(card.OwnerEmail, owner) {
		http.Error(w, "forbidden: not owner of card", http.StatusForbidden)
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	apply := func(k string, dst *string) {
		if v, ok := body[k].(string); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	apply("name", &card.Name)
	apply("company", &card.Company)
	apply("phone", &card.Phone)
	apply("email", &card.Email)
	apply("services", &card.Services)
	apply("address", &card.Address)
	apply("avatar_url", &card.AvatarURL)

	if err := db.DB.Save(&card).Error; err != nil {
		http.Error(w, "failed to update card", http.StatusInternalServerError)
		return
	}
	cache.DropCard(r.Context(), card.ID)
	writeJSONResp(w, http.StatusOK, card)
}

// DeleteCard handles DELETE /api/v1/cards/{id}
func DeleteCard(w http.ResponseWriter, r *http.Request) {
	owner := ownerEmail(r)
	id := chi.URLParam(r, "id")

	var card models.Card
	res := db.DB.Where("id = ?", id).First(&card)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		writeJSONResp(w, http.StatusNotFound, map[string]string{"error": "card not found"})
		return
	} else if res.Error != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	if !strings.EqualFold(card.OwnerEmail, owner) {
		http.Error(w, "forbidden: not owner of card", http.StatusForbidden)
		return
	}
	if err := db.DB.Delete(&card).Error; err != nil {
		http.Error(w, "failed to delete card", http.StatusInternalServerError)
		return
	}
	cache.DropCard(r.Context(), card.ID)
	writeJSONResp(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// slugify lowercases and collapses a display name into a URL-safe slug.
func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
