package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/db"
	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/models"
)

// VerifyPayment handles POST /api/v1/payments/verify
// Body: { "order_id", "payment_id", "signature", "plan" }
// Confirms the gateway signature (HMAC-SHA256 over "order_id|payment_id")
// and records the verified order. Settlement correctness beyond the
// signature stays with the gateway.
func VerifyPayment(w http.ResponseWriter, r *http.Request) {
	owner := ownerEmail(r)

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "invalid json"})
		return
	}
	str := func(k string) string {
		v, _ := body[k].(string)
		return strings.TrimSpace(v)
	}
	orderID := str("order_id")
	paymentID := str("payment_id")
	signature := str("signature")
	plan := str("plan")
	if orderID == "" || paymentID == "" || signature == "" {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "order_id, payment_id and signature are required"})
		return
	}

	secret := os.Getenv("PAYMENT_WEBHOOK_SECRET")
	if secret == "" {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "server misconfigured"})
		return
	}

	if !VerifyPaymentSignature(secret, orderID, paymentID, signature) {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Signature_Mismatch", "message": "payment signature verification failed"})
		return
	}

	// Record the verified order (idempotent per order_id)
	var existing models.PaymentOrder
	err := db.DB.Where("order_id = ?", orderID).First(&existing).Error
	if err == nil {
		writeJSONResp(w, http.StatusOK, map[string]any{"status": "Verified", "order": existing})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "database error"})
		return
	}

	order := models.PaymentOrder{
		OrderID:    orderID,
		PaymentID:  paymentID,
		OwnerEmail: owner,
		Plan:       plan,
		Verified:   true,
	}
	if err := db.DB.Create(&order).Error; err != nil {
		writeJSONResp(w, http.StatusInternalServerError, map[string]any{"status": "Server_Error", "message": "failed to record order"})
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"status": "Verified", "order": order})
}

// VerifyPaymentSignature checks the gateway's HMAC-SHA256 signature over
// "order_id|payment_id" in constant time.
func VerifyPaymentSignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}
