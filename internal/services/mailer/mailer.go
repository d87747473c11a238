// Package mailer sends transactional mail over SMTP. Delivery is
// best-effort: callers fire SendAsync and move on, a failed send is
// logged and never propagates into the request that triggered it.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

type Mailer struct {
	Host     string
	Port     string
	User     string
	Pass     string
	From     string
	FromName string
}

func New(host, port, user, pass, from, fromName string) *Mailer {
	return &Mailer{Host: host, Port: port, User: user, Pass: pass, From: from, FromName: fromName}
}

// Send delivers one HTML mail synchronously and reports success.
func (m *Mailer) Send(to, name, subject, html string) bool {
	if m == nil || m.Host == "" {
		log.Printf("[mailer] SMTP não configurado, email para %s descartado", to)
		return false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.FromName, m.From)
	fmt.Fprintf(&b, "To: %s <%s>\r\n", name, to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)

	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(b.String())); err != nil {
		log.Printf("[mailer] %v", err)
		return false
	}
	return true
}

// SendAsync dispatches the send on its own goroutine.
func (m *Mailer) SendAsync(to, name, subject, html string) {
	go func() {
		_ = m.Send(to, name, subject, html)
	}()
}
