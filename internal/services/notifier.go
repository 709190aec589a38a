// internal/services/notifier.go
package services

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"pedalads/internal/logger"
	"pedalads/internal/models"
	helpers "pedalads/internal/utils/helpers"

	"go.uber.org/zap"
)

// Enqueuer accepts email jobs without blocking.
type Enqueuer interface {
	Enqueue(job EmailJob) bool
}

// Notifier emails the team about new leads and confirms receipt to the
// submitter. A nil queue turns it into a logger.
type Notifier struct {
	queue     Enqueuer
	teamEmail string
	siteURL   string
}

func NewNotifier(queue Enqueuer, teamEmail, siteURL string) *Notifier {
	return &Notifier{
		queue:     queue,
		teamEmail: strings.TrimSpace(teamEmail),
		siteURL:   strings.TrimRight(siteURL, "/"),
	}
}

func (n *Notifier) enqueue(ctx context.Context, to, subject, html string) {
	if n.queue == nil || to == "" {
		logger.WithCtx(ctx).Debug("email skipped, mail is not configured", zap.String("subject", subject))
		return
	}
	if !n.queue.Enqueue(EmailJob{To: []string{to}, Subject: subject, Body: html, IsHTML: true}) {
		logger.WithCtx(ctx).Warn("email not queued", zap.String("subject", subject))
	}
}

// NotifyLead sends the team notification and the submitter confirmation.
func (n *Notifier) NotifyLead(ctx context.Context, l *models.Lead) {
	ctx = context.WithoutCancel(ctx)

	subject, heading := teamSubject(l)
	body := helpers.BuildFieldsHTML(leadFields(l))
	n.enqueue(ctx, n.teamEmail, subject, helpers.BuildSimpleHTML(heading, body))

	confSubject, confText := confirmationCopy(l)
	confBody := helpers.BuildLinkButtonHTML(confText, n.siteURL, "Visit PedalAds")
	n.enqueue(ctx, l.Email, confSubject, helpers.BuildSimpleHTML(confSubject, confBody))
}

func teamSubject(l *models.Lead) (subject, heading string) {
	switch l.Kind {
	case models.LeadWaitlist:
		return fmt.Sprintf("New waitlist signup: %s", l.Company), "New advertiser on the waitlist"
	case models.LeadRider:
		return fmt.Sprintf("New rider application: %s (%s)", l.Name, l.City), "New rider application"
	case models.LeadContact:
		return fmt.Sprintf("Contact form: %s", l.Metadata["subject"]), "New contact message"
	case models.LeadNewsletter:
		return "New newsletter subscriber", "New newsletter subscriber"
	}
	return "New submission", "New submission"
}

func confirmationCopy(l *models.Lead) (subject, text string) {
	switch l.Kind {
	case models.LeadWaitlist:
		return "You're on the PedalAds waitlist", "Thanks for joining the waitlist. We'll reach out as soon as campaigns open in your city."
	case models.LeadRider:
		return "We received your rider application", "Thanks for applying to ride with PedalAds. Our team reviews applications weekly and will contact you soon."
	case models.LeadContact:
		return "We got your message", "Thanks for getting in touch. Someone from the team will reply within two business days."
	case models.LeadNewsletter:
		return "Welcome to the PedalAds newsletter", "You're subscribed. Expect route insights and campaign stories about once a month."
	}
	return "Thanks from PedalAds", "Thanks for reaching out."
}

func leadFields(l *models.Lead) []helpers.Field {
	fields := []helpers.Field{
		{Label: "Name", Value: l.Name},
		{Label: "Email", Value: l.Email},
		{Label: "Phone", Value: l.Phone},
		{Label: "Company", Value: l.Company},
		{Label: "City", Value: l.City},
		{Label: "Message", Value: l.Message},
	}
	for _, k := range slices.Sorted(maps.Keys(l.Metadata)) {
		fields = append(fields, helpers.Field{Label: labelFor(k), Value: l.Metadata[k]})
	}
	return fields
}

func labelFor(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

func itoa(n int) string { return strconv.Itoa(n) }
