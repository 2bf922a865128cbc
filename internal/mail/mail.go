// Package mail transmits a rendered report over SMTP.
package mail

import (
	"errors"
	"fmt"
	"html"
	"time"

	gomail "github.com/wneessen/go-mail"

	"rainseason/internal/creds"
)

// ErrSendFailed wraps SMTP transmission failures. The caller has already
// printed the report, so the data is never lost with the message.
var ErrSendFailed = errors.New("email send failed")

// Send delivers the report to one address using STARTTLS and the resolved
// credentials. The body goes out as plain text with a preformatted HTML
// alternative part.
func Send(cfg creds.SMTP, to, subject, body string) error {
	msg, err := buildMessage(cfg, to, subject, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

func buildMessage(cfg creds.SMTP, to, subject, body string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(cfg.From); err != nil {
		return nil, err
	}
	if err := msg.To(to); err != nil {
		return nil, err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	msg.AddAlternativeString(gomail.TypeTextHTML, htmlBody(body))
	return msg, nil
}

func htmlBody(report string) string {
	return "<html><body>" +
		"<pre style='font-family:monospace;font-size:13px'>" +
		html.EscapeString(report) +
		"</pre></body></html>"
}
