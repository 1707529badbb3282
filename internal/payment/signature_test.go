package payment_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/billsnap/billsnap/internal/payment"
)

func gatewaySignature(secret, orderID, paymentRef string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentRef))

	return hex.EncodeToString(mac.Sum(nil))
}

func TestSignature(t *testing.T) {
	got := payment.Signature("s", "o1", "p1")

	assert.Len(t, got, 64)
	assert.Equal(t, gatewaySignature("s", "o1", "p1"), got)
}

func TestVerifySignature(t *testing.T) {
	valid := gatewaySignature("s", "o1", "p1")

	tests := []struct {
		name       string
		secret     string
		orderID    string
		paymentRef string
		signature  string
		want       bool
	}{
		{name: "Valid", secret: "s", orderID: "o1", paymentRef: "p1", signature: valid, want: true},
		{name: "WrongSecret", secret: "other", orderID: "o1", paymentRef: "p1", signature: valid, want: false},
		{name: "WrongOrder", secret: "s", orderID: "o2", paymentRef: "p1", signature: valid, want: false},
		{name: "WrongPaymentRef", secret: "s", orderID: "o1", paymentRef: "p2", signature: valid, want: false},
		{name: "TamperedSignature", secret: "s", orderID: "o1", paymentRef: "p1", signature: "deadbeef", want: false},
		{name: "EmptySignature", secret: "s", orderID: "o1", paymentRef: "p1", signature: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payment.VerifySignature(tt.secret, tt.orderID, tt.paymentRef, tt.signature)
			assert.Equal(t, tt.want, got)
		})
	}
}
