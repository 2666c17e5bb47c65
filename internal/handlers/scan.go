package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/ocr"
)

// ScanCard handles POST /api/v1/cards/scan
// Body: { "image_url": "https://..." }
// Returns the extracted contact fields; a sparse or empty result is still
// 200 — the frontend lets the user correct fields by hand.
func ScanCard(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "invalid json"})
		return
	}
	imageURL := ""
	if v, ok := body["image_url"].(string); ok {
		imageURL = strings.TrimSpace(v)
	} else if v, ok := body["imageUrl"].(string); ok { // optional camelCase fallback
		imageURL = strings.TrimSpace(v)
	}
	if imageURL == "" {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "image_url is required"})
		return
	}

	// Configuration is read per call, matching the stateless pipeline.
	contact, err := ocr.NewService().ScanCard(r.Context(), imageURL)
	if err != nil {
		status, kind := scanErrorStatus(err)
		writeJSONResp(w, status, map[string]any{"status": kind, "message": err.Error()})
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"status":  "Extracted",
		"contact": contact,
		"sparse":  contact.IsEmpty(),
	})
}

// scanErrorStatus maps each pipeline error kind to an HTTP status so the
// frontend can distinguish bad input from upstream trouble.
func scanErrorStatus(err error) (int, string) {
	var netErr *ocr.NetworkError
	var respErr *ocr.InvalidResponseError
	var upErr *ocr.UpstreamError
	switch {
	case errors.Is(err, ocr.ErrMissingCredential):
		return http.StatusInternalServerError, "Server_Error"
	case errors.As(err, &netErr):
		return http.StatusBadGateway, "Network_Error"
	case errors.As(err, &respErr):
		return http.StatusBadRequest, "Bad_Image_URL"
	case errors.Is(err, ocr.ErrEmptyContent), errors.Is(err, ocr.ErrUnsupportedType):
		return http.StatusBadRequest, "Bad_Image"
	case errors.As(err, &upErr), errors.Is(err, ocr.ErrEmptyResponse):
		return http.StatusFailedDependency, "Upstream_Error"
	default:
		return http.StatusInternalServerError, "Server_Error"
	}
}
