package notifier

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/rs/zerolog"

	"github.com/iho/campusledger/internal/domain"
	"github.com/iho/campusledger/internal/infrastructure/metrics"
)

// Config holds SMTP settings for receipt delivery.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailNotifier implements usecase.Notifier over plain SMTP.
type EmailNotifier struct {
	cfg     Config
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewEmailNotifier creates a new EmailNotifier. metrics may be nil.
func NewEmailNotifier(cfg Config, logger zerolog.Logger, m *metrics.Metrics) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, logger: logger, metrics: m}
}

// SendReceipt emails a payment receipt to a student. The send is abandoned
// when ctx expires; the SMTP exchange itself is left to finish in the
// background since net/smtp offers no cancellation.
func (n *EmailNotifier) SendReceipt(ctx context.Context, to, studentName string, entry domain.LedgerEntry) error {
	e := email.NewEmail()
	e.From = n.cfg.From
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Payment Receipt %s", entry.ReceiptNo)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"A %s of %s has been recorded against your account.\n"+
			"Receipt number: %s\n"+
			"Category: %s\n"+
			"Date: %s\n",
		studentName,
		entry.Kind,
		entry.Amount.StringFixed(2),
		entry.ReceiptNo,
		entry.Category,
		entry.Date.Format("2006-01-02"),
	)
	if entry.Reason != "" {
		body += fmt.Sprintf("Reason: %s\n", entry.Reason)
	}
	body += "\nKeep this receipt for your records.\n"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Send(addr, auth)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-errCh:
	}
	if err != nil {
		if n.metrics != nil {
			n.metrics.NotificationsFailed.Inc()
		}
		return fmt.Errorf("send receipt email: %w", err)
	}

	if n.metrics != nil {
		n.metrics.NotificationsSent.Inc()
	}
	n.logger.Info().
		Str("to", to).
		Str("receipt_no", entry.ReceiptNo).
		Msg("receipt email sent")

	return nil
}
