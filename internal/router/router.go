package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/handlers"
	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/middleware"
)

func RegisterRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	// Public card page data (token required via query param)
	r.Get("/api/v1/card-info/{id}", handlers.GetCardInfo)
	r.Get("/api/v1/cards/{id}/vcard", handlers.DownloadVCard)
	r.Get("/api/v1/cards/{id}/qrcode", handlers.GetCardQRCode)

	// Card scanning (photo -> structured contact)
	r.Post("/api/v1/cards/scan", handlers.ScanCard)

	// Payment signature verification
	r.Post("/api/v1/payments/verify", handlers.VerifyPayment)

	// Owner card management (frontend supplies X-Owner-Email)
	r.Group(func(r chi.Router) {
		r.Post("/api/v1/cards", handlers.CreateCard)
		r.Get("/api/v1/cards", handlers.ListCards)
		r.Get("/api/v1/cards/{id}", handlers.GetCard)
		r.Patch("/api/v1/cards/{id}", handlers.UpdateCard)
		r.Delete("/api/v1/cards/{id}", handlers.DeleteCard)
		r.Post("/api/v1/cards/generate-share-link", handlers.GenerateShareLink)
	})

	return r
}
