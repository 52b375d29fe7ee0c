package notifier

import (
	"context"
)

type TemplateKind string

const (
	TemplateReviewInvite  TemplateKind = "review_invite"
	TemplatePasswordReset TemplateKind = "password_reset"
	TemplateVerifyEmail   TemplateKind = "verify_email"
)

// Notifier sends outbound email notifications. Dispatch is
// fire-and-forget: callers log failures and never propagate them.
type Notifier interface {
	Send(ctx context.Context, toEmail string, kind TemplateKind, payload map[string]string) error
}
