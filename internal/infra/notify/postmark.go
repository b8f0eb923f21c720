package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

const postmarkTag = "activation"

// PostmarkConfig configures the postmark driver.
type PostmarkConfig struct {
	ServerToken  string
	AccountToken string
	From         string

	// BaseURL overrides the Postmark API endpoint.
	BaseURL string
}

// PostmarkNotifier sends activation email through Postmark.
type PostmarkNotifier struct {
	client   *postmark.Client
	from     string
	composer *Composer
}

// NewPostmarkNotifier creates a PostmarkNotifier. The server token and
// sender address are required.
func NewPostmarkNotifier(cfg PostmarkConfig, composer *Composer) (*PostmarkNotifier, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: postmark server token is required", ErrInvalidConfig)
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("%w: postmark sender address is required", ErrInvalidConfig)
	}

	client := postmark.NewClient(cfg.ServerToken, cfg.AccountToken)
	if cfg.BaseURL != "" {
		client.BaseURL = cfg.BaseURL
	}

	return &PostmarkNotifier{client: client, from: cfg.From, composer: composer}, nil
}

// Deliver sends the activation message. A non-zero Postmark error code is
// reported as a failure.
func (p *PostmarkNotifier) Deliver(ctx context.Context, recipient, token string) error {
	msg, err := p.composer.Compose(recipient, token)
	if err != nil {
		return err
	}

	resp, err := p.client.SendEmail(ctx, postmark.Email{
		From:     p.from,
		To:       msg.To,
		Subject:  msg.Subject,
		TextBody: msg.Body,
		Tag:      postmarkTag,
	})
	if err != nil {
		return fmt.Errorf("notify: postmark: %w", err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			errors.New("notify: postmark rejected message"),
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
