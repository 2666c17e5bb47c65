package ocr

import (
	"context"
	"net/http"
	"time"

	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/models"
)

// Service runs the card-scanning pipeline: fetch and encode the image,
// send it through the vision model, normalize the result. Each scan is an
// independent sequential pair of network calls with no shared state, so a
// single Service is safe for concurrent use. The pipeline itself imposes
// no retry or deadline; bound latency with the caller's context.
type Service struct {
	vision *VisionClient
	client *http.Client
}

// NewService builds a scanning service configured from the environment.
func NewService() *Service {
	return &Service{
		vision: NewVisionClient(),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// ScanCard extracts structured contact fields from the card photo at
// imageURL. The returned contact may be sparse or empty; that is a success,
// not an error — the caller's UI lets the user fill gaps by hand.
func (s *Service) ScanCard(ctx context.Context, imageURL string) (models.ParsedContact, error) {
	// Fail on configuration before touching the network at all.
	if !s.vision.hasCredential() {
		return models.ParsedContact{}, ErrMissingCredential
	}
	img, err := FetchImage(ctx, s.client, imageURL)
	if err != nil {
		return models.ParsedContact{}, err
	}
	return s.vision.Extract(ctx, img)
}
