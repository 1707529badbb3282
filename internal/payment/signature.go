package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signature computes the hex-encoded HMAC-SHA256 the gateway sends with its
// completion callback: HMAC(secret, "orderID|paymentRef").
func Signature(secret, orderID, paymentRef string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentRef))

	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a callback signature in constant time.
func VerifySignature(secret, orderID, paymentRef, signature string) bool {
	expected := Signature(secret, orderID, paymentRef)

	return hmac.Equal([]byte(expected), []byte(signature))
}
