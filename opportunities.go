package sdk

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/myanmarcares/myanmarcares/sdk/go/query"
	"github.com/myanmarcares/myanmarcares/sdk/go/routes"
)

// VolunteerApplication is what a volunteer submits for an opportunity.
type VolunteerApplication struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone,omitempty"`
	Experience   string   `json:"experience,omitempty"`
	Motivation   string   `json:"motivation,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	AgreeToTerms bool     `json:"agreeToTerms"`
}

// Validate checks the fields the application form requires.
func (a VolunteerApplication) Validate() error {
	if !a.AgreeToTerms {
		return ValidationError{Field: "agreeToTerms", Reason: "Please agree to the terms and conditions"}
	}
	if err := requireText("firstName", a.FirstName); err != nil {
		return err
	}
	if err := requireText("lastName", a.LastName); err != nil {
		return err
	}
	return requireEmail("email", a.Email)
}

// ApplicationRecord is the server's record of a submitted application.
type ApplicationRecord struct {
	ID          int                   `json:"id"`
	DocumentID  string                `json:"documentId,omitempty"`
	Status      string                `json:"status,omitempty"`
	Opportunity *VolunteerOpportunity `json:"opportunity,omitempty"`
	CreatedAt   *time.Time            `json:"createdAt,omitempty"`
}

type applicationPayload struct {
	VolunteerApplication
	Opportunity string `json:"opportunity"`
}

// OpportunitiesClient reads volunteer opportunities and submits applications.
// Filters match case-insensitive substrings.
type OpportunitiesClient struct {
	client *Client
}

// List returns one page of opportunities.
func (c *OpportunitiesClient) List(ctx context.Context, params ListParams) (Envelope[[]VolunteerOpportunity], error) {
	if c == nil || c.client == nil {
		return Envelope[[]VolunteerOpportunity]{}, fmt.Errorf("sdk: opportunities client not initialized")
	}
	return listEntities[VolunteerOpportunity](ctx, c.client, routes.VolunteerOpportunities, params.builder(query.MatchContains))
}

// Search is List with the volunteer page's search fields applied.
func (c *OpportunitiesClient) Search(ctx context.Context, filter OpportunityFilter, params ListParams) (Envelope[[]VolunteerOpportunity], error) {
	params.Filters = append(filter.Filters(), params.Filters...)
	return c.List(ctx, params)
}

// Get fetches one opportunity.
func (c *OpportunitiesClient) Get(ctx context.Context, id, populate string) (Envelope[*VolunteerOpportunity], error) {
	if c == nil || c.client == nil {
		return Envelope[*VolunteerOpportunity]{}, fmt.Errorf("sdk: opportunities client not initialized")
	}
	return getEntity[VolunteerOpportunity](ctx, c.client, routes.VolunteerOpportunities, id, populate)
}

// Apply submits an application for the opportunity.
func (c *OpportunitiesClient) Apply(ctx context.Context, opportunityID string, app VolunteerApplication) (Envelope[*ApplicationRecord], error) {
	if c == nil || c.client == nil {
		return Envelope[*ApplicationRecord]{}, fmt.Errorf("sdk: opportunities client not initialized")
	}
	if strings.TrimSpace(opportunityID) == "" {
		return Envelope[*ApplicationRecord]{}, ValidationError{Field: "opportunity", Reason: "opportunity is required"}
	}
	if err := app.Validate(); err != nil {
		return Envelope[*ApplicationRecord]{}, err
	}
	body := dataPayload{Data: applicationPayload{VolunteerApplication: app, Opportunity: opportunityID}}
	return Post[*ApplicationRecord](ctx, c.client, routes.VolunteerApplications, body)
}
