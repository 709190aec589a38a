package models

import "time"

type Consent struct {
	VisitorID   string    `json:"visitorId"`
	Necessary   bool      `json:"necessary"`
	Analytics   bool      `json:"analytics"`
	Marketing   bool      `json:"marketing"`
	Preferences bool      `json:"preferences"`
	Vendor      string    `json:"vendor,omitempty"`
	UserAgent   string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// swagger:model ConsentRequest
type ConsentRequest struct {
	Analytics   bool   `json:"analytics"`
	Marketing   bool   `json:"marketing"`
	Preferences bool   `json:"preferences"`
	Vendor      string `json:"vendor" validate:"max=60"`
}
