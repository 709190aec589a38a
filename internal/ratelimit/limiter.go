// Package ratelimit counts requests per (identifier, action) in fixed windows.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pedalads/internal/reqctx"
)

// Policy allows MaxRequests hits per Window for one action.
type Policy struct {
	Action      string
	Window      time.Duration
	MaxRequests int
}

func (p Policy) validate() error {
	if p.Action == "" {
		return errors.New("ratelimit: policy without action")
	}
	if p.Window <= 0 || p.MaxRequests <= 0 {
		return fmt.Errorf("ratelimit: invalid policy %q (window=%s, max=%d)", p.Action, p.Window, p.MaxRequests)
	}
	return nil
}

// Limiter records a hit and reports whether it is within the policy.
// Callers treat a non-nil error as "allowed".
type Limiter interface {
	Allow(ctx context.Context, identifier string, p Policy) (bool, error)
}

var (
	BlogPost      = Policy{Action: "blogPost", Window: time.Hour, MaxRequests: 10}
	Waitlist      = Policy{Action: "waitlist", Window: time.Hour, MaxRequests: 5}
	RiderSignup   = Policy{Action: "riderSignup", Window: time.Hour, MaxRequests: 5}
	ContactForm   = Policy{Action: "contactForm", Window: time.Hour, MaxRequests: 5}
	Newsletter    = Policy{Action: "newsletter", Window: time.Hour, MaxRequests: 3}
	CookieConsent = Policy{Action: "cookieConsent", Window: time.Hour, MaxRequests: 30}
	AdminLogin    = Policy{Action: "adminLogin", Window: 15 * time.Minute, MaxRequests: 10}
)

// ClientIdentifier picks the first X-Forwarded-For hop, then X-Real-IP,
// then "unknown".
func ClientIdentifier(h http.Header) string {
	if xff := h.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return first
		}
	}
	if real := strings.TrimSpace(h.Get("X-Real-IP")); real != "" {
		return real
	}
	return reqctx.UnknownClient
}

func key(identifier, action string) string {
	return action + ":" + identifier
}
