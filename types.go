package sdk

import (
	"bytes"
	"encoding/json"
	"time"
)

// NumberString holds a value the API sends either as a JSON string or a number.
type NumberString string

// UnmarshalJSON accepts "12,000", 12000 and null.
func (n *NumberString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumberString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = NumberString(num.String())
	return nil
}

// Media is an uploaded file such as an NGO logo or a post's featured image.
type Media struct {
	ID              int    `json:"id"`
	DocumentID      string `json:"documentId,omitempty"`
	Name            string `json:"name,omitempty"`
	URL             string `json:"url"`
	AlternativeText string `json:"alternativeText,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	Mime            string `json:"mime,omitempty"`
}

// Contact lists an NGO's public contact channels.
type Contact struct {
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Website  string `json:"website,omitempty"`
	Facebook string `json:"facebook,omitempty"`
}

// NGO is an organization listed in the directory.
type NGO struct {
	ID              int          `json:"id"`
	DocumentID      string       `json:"documentId,omitempty"`
	Name            string       `json:"name"`
	NameMyanmar     string       `json:"nameMyanmar,omitempty"`
	Description     string       `json:"description,omitempty"`
	LongDescription string       `json:"longDescription,omitempty"`
	Cause           string       `json:"cause,omitempty"`
	Location        string       `json:"location,omitempty"`
	Verified        bool         `json:"verified"`
	Founded         string       `json:"founded,omitempty"`
	Raised          NumberString `json:"raised,omitempty"`
	Goal            NumberString `json:"goal,omitempty"`
	Volunteers      int          `json:"volunteers,omitempty"`
	Events          int          `json:"events,omitempty"`
	Beneficiaries   NumberString `json:"beneficiaries,omitempty"`
	Slug            string       `json:"slug,omitempty"`
	Image           *Media       `json:"image,omitempty"`
	Contact         *Contact     `json:"contact,omitempty"`
	CreatedAt       *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time   `json:"updatedAt,omitempty"`
	PublishedAt     *time.Time   `json:"publishedAt,omitempty"`
}

// Campaign is a fundraising drive run by an NGO.
type Campaign struct {
	ID          int        `json:"id"`
	DocumentID  string     `json:"documentId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Raised      float64    `json:"raised"`
	Goal        float64    `json:"goal"`
	Image       *Media     `json:"image,omitempty"`
	NGO         *NGO       `json:"ngo,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Event is a scheduled NGO activity.
type Event struct {
	ID                   int        `json:"id"`
	DocumentID           string     `json:"documentId,omitempty"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	Date                 string     `json:"date,omitempty"`
	Location             string     `json:"location,omitempty"`
	VolunteersNeeded     int        `json:"volunteersNeeded,omitempty"`
	VolunteersRegistered int        `json:"volunteersRegistered,omitempty"`
	Type                 EventType  `json:"type,omitempty"`
	Image                *Media     `json:"image,omitempty"`
	NGO                  *NGO       `json:"ngo,omitempty"`
	CreatedAt            *time.Time `json:"createdAt,omitempty"`
	UpdatedAt            *time.Time `json:"updatedAt,omitempty"`
	PublishedAt          *time.Time `json:"publishedAt,omitempty"`
}

// VolunteerOpportunity is an open volunteering role.
type VolunteerOpportunity struct {
	ID                   int             `json:"id"`
	DocumentID           string          `json:"documentId,omitempty"`
	Title                string          `json:"title"`
	Description          string          `json:"description,omitempty"`
	Location             string          `json:"location,omitempty"`
	Type                 OpportunityType `json:"type,omitempty"`
	Duration             string          `json:"duration,omitempty"`
	TimeCommitment       string          `json:"timeCommitment,omitempty"`
	Skills               []string        `json:"skills,omitempty"`
	VolunteersNeeded     int             `json:"volunteersNeeded,omitempty"`
	VolunteersRegistered int             `json:"volunteersRegistered,omitempty"`
	StartDate            string          `json:"startDate,omitempty"`
	Urgent               bool            `json:"urgent"`
	NGO                  *NGO            `json:"ngo,omitempty"`
	CreatedAt            *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt            *time.Time      `json:"updatedAt,omitempty"`
	PublishedAt          *time.Time      `json:"publishedAt,omitempty"`
}

// SpotsLeft returns how many volunteers are still needed, never below zero.
func (o VolunteerOpportunity) SpotsLeft() int {
	if left := o.VolunteersNeeded - o.VolunteersRegistered; left > 0 {
		return left
	}
	return 0
}

// Author wrote a blog post.
type Author struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Avatar *Media `json:"avatar,omitempty"`
}

// BlogPost is a published story.
type BlogPost struct {
	ID            int        `json:"id"`
	DocumentID    string     `json:"documentId,omitempty"`
	Title         string     `json:"title"`
	Content       string     `json:"content,omitempty"`
	Excerpt       string     `json:"excerpt,omitempty"`
	Slug          string     `json:"slug,omitempty"`
	FeaturedImage *Media     `json:"featuredImage,omitempty"`
	Author        *Author    `json:"author,omitempty"`
	NGO           *NGO       `json:"ngo,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
}

// Role is a user's permission role.
type Role struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Profile holds optional personal details.
type Profile struct {
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Location  string   `json:"location,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// User is an authenticated account.
type User struct {
	ID         int        `json:"id"`
	DocumentID string     `json:"documentId,omitempty"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Confirmed  bool       `json:"confirmed"`
	Blocked    bool       `json:"blocked"`
	Role       *Role      `json:"role,omitempty"`
	Profile    *Profile   `json:"profile,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// Donation is a recorded gift to an NGO.
type Donation struct {
	ID            int            `json:"id"`
	DocumentID    string         `json:"documentId,omitempty"`
	Amount        float64        `json:"amount"`
	Currency      string         `json:"currency,omitempty"`
	PaymentMethod PaymentMethod  `json:"paymentMethod,omitempty"`
	Status        DonationStatus `json:"status,omitempty"`
	TransactionID string         `json:"transactionId,omitempty"`
	Donor         *User          `json:"donor,omitempty"`
	NGO           *NGO           `json:"ngo,omitempty"`
	Campaign      *Campaign      `json:"campaign,omitempty"`
	CreatedAt     *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time     `json:"updatedAt,omitempty"`
}
