package models

import "time"

type LeadKind string

const (
	LeadWaitlist   LeadKind = "waitlist"
	LeadRider      LeadKind = "rider"
	LeadContact    LeadKind = "contact"
	LeadNewsletter LeadKind = "newsletter"
)

func (k LeadKind) Valid() bool {
	switch k {
	case LeadWaitlist, LeadRider, LeadContact, LeadNewsletter:
		return true
	}
	return false
}

type Lead struct {
	ID        string            `json:"id"`
	Kind      LeadKind          `json:"kind"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	Company   string            `json:"company,omitempty"`
	City      string            `json:"city,omitempty"`
	Message   string            `json:"message,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	ClientIP  string            `json:"-"`
	CreatedAt time.Time         `json:"createdAt"`
}

// swagger:model WaitlistRequest
type WaitlistRequest struct {
	Name      string `json:"name"      validate:"required,max=120"         example:"Dana Brand"`
	Email     string `json:"email"     validate:"required,email,max=254"   example:"dana@brand.example"`
	Company   string `json:"company"   validate:"required,max=160"         example:"Brand Co"`
	Role      string `json:"role"      validate:"max=120"                  example:"Marketing lead"`
	City      string `json:"city"      validate:"max=120"                  example:"Austin"`
	FleetSize string `json:"fleetSize" validate:"omitempty,oneof=1-10 11-50 51-100 100+"`
	Budget    string `json:"budget"    validate:"max=60"`
}

// swagger:model RiderSignupRequest
type RiderSignupRequest struct {
	Name        string `json:"name"        validate:"required,max=120"`
	Email       string `json:"email"       validate:"required,email,max=254"`
	Phone       string `json:"phone"       validate:"required,min=7,max=32"`
	City        string `json:"city"        validate:"required,max=120"`
	BikeType    string `json:"bikeType"    validate:"required,oneof=road city cargo ebike other"`
	WeeklyHours int    `json:"weeklyHours" validate:"min=1,max=80"`
	Referral    string `json:"referral"    validate:"max=120"`
}

// swagger:model ContactRequest
type ContactRequest struct {
	Name    string `json:"name"    validate:"required,max=120"`
	Email   string `json:"email"   validate:"required,email,max=254"`
	Company string `json:"company" validate:"max=160"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// swagger:model NewsletterRequest
type NewsletterRequest struct {
	Email  string `json:"email"  validate:"required,email,max=254"`
	Source string `json:"source" validate:"max=60"`
}
