package email

import (
	"errors"
	"net/smtp"
	"strings"
)

type smtpSender func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// defaultSender is swapped out in tests
var defaultSender smtpSender = smtp.SendMail

// Client sends text/html email over authenticated SMTP
type Client struct {
	auth   smtp.Auth
	from   string
	sender string
	host   string
}

// NewClient returns a new email client
// The host must include a port, e.g. smtp.example.com:587
func NewClient(from, sender, username, password, host string) (*Client, error) {
	hostname, _, found := strings.Cut(host, ":")
	if !found {
		return nil, errors.New("host must have a port")
	}

	return &Client{
		auth:   smtp.PlainAuth("", username, password, hostname),
		from:   from,
		sender: sender,
		host:   host,
	}, nil
}

// SendSimple sends an email to a single recipient
func (c *Client) SendSimple(to, subject, msg string) error {
	return c.Send([]string{to}, nil, nil, subject, msg)
}

// Send sends an email
// The bcc recipients receive the message but do not appear in the headers
func (c *Client) Send(to, cc, bcc []string, subject, msg string) error {
	recipients := make([]string, 0, len(to)+len(cc)+len(bcc))
	recipients = append(recipients, to...)
	recipients = append(recipients, cc...)
	recipients = append(recipients, bcc...)

	var body strings.Builder
	if len(to) > 0 {
		body.WriteString("To: " + strings.Join(to, ",") + "\n")
	}

	if len(cc) > 0 {
		body.WriteString("Cc: " + strings.Join(cc, ",") + "\n")
	}

	body.WriteString("From: " + c.from + "\n")
	body.WriteString("Subject: " + subject + "\n")
	body.WriteString("Content-Type: text/html\n\n")
	body.WriteString(msg)

	return defaultSender(c.host, c.auth, c.sender, recipients, []byte(body.String()))
}
