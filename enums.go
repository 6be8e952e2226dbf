package sdk

// PaymentMethod is how a donor pays.
type PaymentMethod string

const (
	PaymentMethodKBZPay       PaymentMethod = "kbzpay"
	PaymentMethodWaveMoney    PaymentMethod = "wavemoney"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
)

// Valid reports whether m is one of the supported payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodKBZPay, PaymentMethodWaveMoney, PaymentMethodBankTransfer, PaymentMethodCard:
		return true
	}
	return false
}

// DonationStatus tracks a donation through payment.
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusFailed    DonationStatus = "failed"
)

// EventType describes where an event takes place.
type EventType string

const (
	EventTypeOnline  EventType = "online"
	EventTypeOffline EventType = "offline"
	EventTypeHybrid  EventType = "hybrid"
)

// OpportunityType describes where volunteering happens.
type OpportunityType string

const (
	OpportunityTypeOnSite OpportunityType = "on-site"
	OpportunityTypeRemote OpportunityType = "remote"
	OpportunityTypeHybrid OpportunityType = "hybrid"
)

// DefaultCurrency is the currency donations are recorded in when none is given.
const DefaultCurrency = "MMK"
