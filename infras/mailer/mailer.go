package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"campus/config"
	"campus/infras/otel"
	"campus/shared/constant"
	"context"
	"fmt"
	"net"
	"net/smtp"

	"github.com/rs/zerolog/log"
)

// Mailer delivers notification emails. Callers treat delivery as best-effort:
// a failed send must never fail the operation that triggered it.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type smtpMailer struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Mailer {
	return &smtpMailer{
		cfg:  cfg,
		otel: otl,
	}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, htmlBody string) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".mailer.Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	smtpCfg := m.cfg.SMTP

	if !smtpCfg.Enable {
		log.Info().Str("to", to).Str("subject", subject).Msg("mailer disabled, skipping send")

		return nil
	}

	from := smtpCfg.FromEmail
	if smtpCfg.FromDisplayName != "" {
		from = fmt.Sprintf("%s <%s>", smtpCfg.FromDisplayName, smtpCfg.FromEmail)
	}

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		from, to, subject, htmlBody,
	)

	addr := net.JoinHostPort(smtpCfg.Host, smtpCfg.Port)

	var auth smtp.Auth
	if smtpCfg.Username != "" {
		auth = smtp.PlainAuth("", smtpCfg.Username, smtpCfg.Password, smtpCfg.Host)
	}

	if err = smtp.SendMail(addr, auth, smtpCfg.FromEmail, []string{to}, []byte(msg)); err != nil {
		log.Warn().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("email sent")

	return nil
}
