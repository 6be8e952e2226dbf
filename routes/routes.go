// Package routes lists the content API paths used by the SDK. Paths are
// relative to the API prefix ("/api" by default).
package routes

const (
	// AuthLocal exchanges an identifier (email or username) and password for a JWT.
	AuthLocal = "/auth/local"

	// AuthRegister creates a local account and returns a JWT.
	AuthRegister = "/auth/local/register"

	// AuthForgotPassword sends a reset-password email.
	AuthForgotPassword = "/auth/forgot-password" // #nosec G101 -- route path, not a credential

	// AuthResetPassword sets a new password using the emailed code.
	AuthResetPassword = "/auth/reset-password" // #nosec G101 -- route path, not a credential

	// UsersMe returns or updates the authenticated user.
	UsersMe = "/users/me"

	NGOs                   = "/ngos"
	VolunteerOpportunities = "/volunteer-opportunities"
	VolunteerApplications  = "/volunteer-applications"
	Donations              = "/donations"
	Events                 = "/events"
	BlogPosts              = "/blog-posts"

	// PaymentsProcess submits a payment for an existing donation.
	PaymentsProcess = "/payments/process"

	// PaymentsVerify is the prefix for GET /payments/verify/{transaction_id}.
	PaymentsVerify = "/payments/verify"
)
