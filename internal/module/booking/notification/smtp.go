package notification

import (
	"context"
	"fmt"
	"hotel-booking-service/config"

	"github.com/wneessen/go-mail"
)

type smtpNotifier struct {
	cfg    *config.MailConfig
	client *mail.Client
}

func NewSMTP(cfg *config.MailConfig) (Notifier, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(cfg.Timeout),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	c, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("init smtp client: %w", err)
	}

	return &smtpNotifier{cfg: cfg, client: c}, nil
}

func (n *smtpNotifier) Send(ctx context.Context, msg Message) error {
	m, err := buildMessage(n.cfg, msg)
	if err != nil {
		return err
	}
	if err := n.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
