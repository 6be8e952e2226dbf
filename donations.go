package sdk

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/myanmarcares/myanmarcares/sdk/go/query"
	"github.com/myanmarcares/myanmarcares/sdk/go/routes"
)

// DonorInfo identifies the person giving.
type DonorInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

// DonationInput is the body of a new donation.
type DonationInput struct {
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	NGO           string        `json:"ngo"`
	Campaign      string        `json:"campaign,omitempty"`
	DonorInfo     DonorInfo     `json:"donorInfo"`
}

// DonationsClient records and reads donations. Filters match exactly.
type DonationsClient struct {
	client *Client
}

// Create records a donation. The body is sent as {"data": input}.
func (c *DonationsClient) Create(ctx context.Context, input DonationInput) (Envelope[*Donation], error) {
	if c == nil || c.client == nil {
		return Envelope[*Donation]{}, fmt.Errorf("sdk: donations client not initialized")
	}
	if err := c.validate(&input); err != nil {
		return Envelope[*Donation]{}, err
	}
	return Post[*Donation](ctx, c.client, routes.Donations, dataPayload{Data: input})
}

func (c *DonationsClient) validate(input *DonationInput) error {
	if input.Amount < c.client.minDonation {
		return ValidationError{
			Field:  "amount",
			Reason: fmt.Sprintf("Minimum donation amount is %s", formatAmount(c.client.minDonation)),
		}
	}
	if !input.PaymentMethod.Valid() {
		return ValidationError{Field: "paymentMethod", Reason: "Please select a payment method"}
	}
	if err := requireText("ngo", input.NGO); err != nil {
		return err
	}
	if err := requireText("donorInfo.name", input.DonorInfo.Name); err != nil {
		return err
	}
	if err := requireEmail("donorInfo.email", input.DonorInfo.Email); err != nil {
		return err
	}
	if input.Currency == "" {
		input.Currency = DefaultCurrency
	}
	return nil
}

// List returns one page of donations.
func (c *DonationsClient) List(ctx context.Context, params ListParams) (Envelope[[]Donation], error) {
	if c == nil || c.client == nil {
		return Envelope[[]Donation]{}, fmt.Errorf("sdk: donations client not initialized")
	}
	return listEntities[Donation](ctx, c.client, routes.Donations, params.builder(query.MatchExact))
}

// Get fetches one donation.
func (c *DonationsClient) Get(ctx context.Context, id, populate string) (Envelope[*Donation], error) {
	if c == nil || c.client == nil {
		return Envelope[*Donation]{}, fmt.Errorf("sdk: donations client not initialized")
	}
	return getEntity[Donation](ctx, c.client, routes.Donations, id, populate)
}

// formatAmount renders whole amounts with thousands separators: 1000 -> "1,000".
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	whole, frac, ok := strings.Cut(s, ".")
	if ok {
		frac = "." + frac
	}
	var out []byte
	for i := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, whole[i])
	}
	return string(out) + frac
}
