// Package mailer delivers a composed digest over SMTP.
package mailer

import (
	"crypto/tls"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/deusflow/ligawatch/internal/digest"
)

const (
	SecureSSL      = "ssl"
	SecureSTARTTLS = "starttls"
)

type Config struct {
	Host       string
	Port       int
	Secure     string
	Username   string
	Password   string
	From       string
	Recipients []string
}

// Sender abstracts the SMTP transport.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	cfg    Config
	sender Sender
}

func New(cfg Config) *Mailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	// ssl means implicit TLS from the first byte; starttls upgrades a plain
	// connection when the server offers it.
	d.SSL = cfg.Secure == SecureSSL
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	return &Mailer{cfg: cfg, sender: d}
}

// NewWithSender builds a Mailer over an arbitrary transport.
func NewWithSender(cfg Config, s Sender) *Mailer {
	return &Mailer{cfg: cfg, sender: s}
}

// Message builds the multipart message: plain text with an HTML alternative
// and the JSON item list attached.
func (m *Mailer) Message(d *digest.Digest) *gomail.Message {
	msg := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.Recipients...)
	msg.SetHeader("Subject", d.Subject)
	msg.SetBody("text/plain", d.Text)
	msg.AddAlternative("text/html", d.HTML)

	payload := d.JSON
	msg.Attach(d.AttachmentName,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(payload)
			return err
		}),
		gomail.SetHeader(map[string][]string{
			"Content-Type": {fmt.Sprintf("application/json; name=%q", d.AttachmentName)},
		}),
	)
	return msg
}

// Send transmits the digest once. Any failure is returned to the caller.
func (m *Mailer) Send(d *digest.Digest) error {
	if len(m.cfg.Recipients) == 0 {
		return fmt.Errorf("mailer: no recipients")
	}
	if err := m.sender.DialAndSend(m.Message(d)); err != nil {
		return fmt.Errorf("mailer: send to %s:%d: %w", m.cfg.Host, m.cfg.Port, err)
	}
	return nil
}
