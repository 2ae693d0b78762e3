package mailer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"

	"github.com/deusflow/ligawatch/internal/digest"
)

type captureSender struct {
	sent []*gomail.Message
	err  error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.sent = append(c.sent, m...)
	return c.err
}

func testDigest() *digest.Digest {
	return &digest.Digest{
		Subject:        "[LALIGA | Javier Tebas] Monitor diario - 2024-05-10",
		Text:           "texto plano",
		HTML:           "<p>html</p>",
		JSON:           []byte(`{"items":[]}`),
		AttachmentName: "noticias_2024-05-10.json",
	}
}

func TestSendBuildsMultipartMessage(t *testing.T) {
	cs := &captureSender{}
	m := NewWithSender(Config{From: "monitor@example.com", Recipients: []string{"a@example.com", "b@example.com"}}, cs)

	if err := m.Send(testDigest()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(cs.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(cs.sent))
	}

	var buf bytes.Buffer
	if _, err := cs.sent[0].WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	raw := buf.String()
	for _, want := range []string{
		"multipart/alternative",
		"text/plain",
		"text/html",
		"application/json",
		"noticias_2024-05-10.json",
		"a@example.com",
		"b@example.com",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q", want)
		}
	}
	if got := cs.sent[0].GetHeader("From"); len(got) != 1 || got[0] != "monitor@example.com" {
		t.Errorf("From = %v", got)
	}
}

func TestSendErrors(t *testing.T) {
	if err := NewWithSender(Config{}, &captureSender{}).Send(testDigest()); err == nil {
		t.Errorf("expected error without recipients")
	}

	boom := errors.New("535 auth failed")
	m := NewWithSender(Config{Host: "smtp.example.com", Port: 465, Recipients: []string{"a@example.com"}}, &captureSender{err: boom})
	if err := m.Send(testDigest()); !errors.Is(err, boom) {
		t.Errorf("expected wrapped transport error, got %v", err)
	}
}

func TestNewSelectsTLSMode(t *testing.T) {
	ssl := New(Config{Host: "smtp.gmail.com", Port: 465, Secure: SecureSSL})
	if d := ssl.sender.(*gomail.Dialer); !d.SSL {
		t.Errorf("ssl mode should use implicit TLS")
	}
	starttls := New(Config{Host: "smtp.gmail.com", Port: 587, Secure: SecureSTARTTLS})
	if d := starttls.sender.(*gomail.Dialer); d.SSL {
		t.Errorf("starttls mode should not use implicit TLS")
	}
}
