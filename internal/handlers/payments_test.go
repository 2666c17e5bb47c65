package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature_Valid(t *testing.T) {
	sig := signPayment("secret", "order_123", "pay_456")
	assert.True(t, VerifyPaymentSignature("secret", "order_123", "pay_456", sig))
}

func TestVerifyPaymentSignature_UppercaseHexAccepted(t *testing.T) {
	sig := strings.ToUpper(signPayment("secret", "order_123", "pay_456"))
	assert.True(t, VerifyPaymentSignature("secret", "order_123", "pay_456", sig))
}

func TestVerifyPaymentSignature_Tampered(t *testing.T) {
	sig := signPayment("secret", "order_123", "pay_456")
	assert.False(t, VerifyPaymentSignature("secret", "order_123", "pay_999", sig))
	assert.False(t, VerifyPaymentSignature("secret", "order_999", "pay_456", sig))
	assert.False(t, VerifyPaymentSignature("wrong", "order_123", "pay_456", sig))
	assert.False(t, VerifyPaymentSignature("secret", "order_123", "pay_456", ""))
}
