package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// RazorpayOrder is the subset of the order-create response we use
type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // in paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// RazorpayClient talks to the Razorpay orders API and verifies payment
// signatures. It is constructed at startup and passed to the payment
// controllers.
type RazorpayClient struct {
	keyID     string
	keySecret string
	http      *resty.Client
}

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	client := resty.New().
		SetBaseURL("https://api.razorpay.com/v1").
		SetBasicAuth(keyID, keySecret).
		SetTimeout(10 * time.Second)

	return &RazorpayClient{
		keyID:     keyID,
		keySecret: keySecret,
		http:      client,
	}
}

// KeyID is exposed for checkout responses so the frontend can open the
// payment widget.
func (r *RazorpayClient) KeyID() string {
	return r.keyID
}

// CreateOrder creates a Razorpay order; amount is in paise
func (r *RazorpayClient) CreateOrder(amountPaise int64, receipt string) (*RazorpayOrder, error) {
	resp, err := r.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":          amountPaise,
			"currency":        "INR",
			"receipt":         receipt,
			"payment_capture": 1,
		}).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("razorpay order creation failed: %s", resp.String())
	}

	var order RazorpayOrder
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("failed to parse razorpay response: %v", err)
	}

	return &order, nil
}

// VerifyPaymentSignature checks the checkout callback signature:
// HMAC-SHA256 of "<order_id>|<payment_id>" keyed with the API secret.
func (r *RazorpayClient) VerifyPaymentSignature(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(r.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("payment signature mismatch")
	}
	return nil
}
