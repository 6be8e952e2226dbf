package sdk

import (
	"context"
	"fmt"
	"time"

	"github.com/myanmarcares/myanmarcares/sdk/go/routes"
)

// PaymentInput asks the server to charge an existing donation.
type PaymentInput struct {
	DonationID     string         `json:"donationId"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	PaymentDetails map[string]any `json:"paymentDetails,omitempty"`
}

// PaymentResult is the server's view of a payment attempt.
type PaymentResult struct {
	TransactionID string         `json:"transactionId"`
	Status        DonationStatus `json:"status"`
	DonationID    string         `json:"donationId,omitempty"`
	Amount        float64        `json:"amount,omitempty"`
	Currency      string         `json:"currency,omitempty"`
	Message       string         `json:"message,omitempty"`
	ProcessedAt   *time.Time     `json:"processedAt,omitempty"`
}

// Completed reports whether the payment went through.
func (r PaymentResult) Completed() bool { return r.Status == DonationStatusCompleted }

// PaymentsClient processes and verifies payments. Payment handling itself
// happens on the server.
type PaymentsClient struct {
	client *Client
}

// Process submits a payment. The body is sent as {"data": input}.
func (c *PaymentsClient) Process(ctx context.Context, input PaymentInput) (Envelope[*PaymentResult], error) {
	if c == nil || c.client == nil {
		return Envelope[*PaymentResult]{}, fmt.Errorf("sdk: payments client not initialized")
	}
	if err := requireText("donationId", input.DonationID); err != nil {
		return Envelope[*PaymentResult]{}, err
	}
	if !input.PaymentMethod.Valid() {
		return Envelope[*PaymentResult]{}, ValidationError{Field: "paymentMethod", Reason: "Please select a payment method"}
	}
	return Post[*PaymentResult](ctx, c.client, routes.PaymentsProcess, dataPayload{Data: input})
}

// Verify looks up a payment by transaction id.
func (c *PaymentsClient) Verify(ctx context.Context, transactionID string) (Envelope[*PaymentResult], error) {
	if c == nil || c.client == nil {
		return Envelope[*PaymentResult]{}, fmt.Errorf("sdk: payments client not initialized")
	}
	path, err := entityPath(routes.PaymentsVerify, transactionID)
	if err != nil {
		return Envelope[*PaymentResult]{}, ValidationError{Field: "transactionId", Reason: "transaction id is required"}
	}
	return Get[*PaymentResult](ctx, c.client, path, nil)
}
