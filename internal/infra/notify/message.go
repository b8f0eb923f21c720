package notify

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

// DefaultProductName is used when no product name is configured.
const DefaultProductName = "TokGate"

var bodyTemplate = template.Must(template.New("activation").Parse(`Welcome to {{.Product}}!

Your activation token is: {{.Token}}

Please use this token to activate your account.
This token will expire in {{.ValidHours}} hours.

Best regards,
{{.Product}} Team`))

// Message is a rendered notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Composer renders activation messages.
type Composer struct {
	product  string
	validity time.Duration
}

// NewComposer creates a Composer. validity is the token lifetime quoted in
// the message body.
func NewComposer(product string, validity time.Duration) *Composer {
	if product == "" {
		product = DefaultProductName
	}
	return &Composer{product: product, validity: validity}
}

// Compose renders the activation message carrying token for recipient.
func (c *Composer) Compose(recipient, token string) (Message, error) {
	var body bytes.Buffer
	err := bodyTemplate.Execute(&body, struct {
		Product    string
		Token      string
		ValidHours int
	}{c.product, token, int(c.validity / time.Hour)})
	if err != nil {
		return Message{}, fmt.Errorf("notify: render message: %w", err)
	}

	return Message{
		To:      recipient,
		Subject: c.product + " Activation Token",
		Body:    body.String(),
	}, nil
}
