// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

package mailer

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const sendGridBaseURL = "https://api.sendgrid.com"

// sendGridClient is a thin resty-based client for the SendGrid v3 mail send
// endpoint.
type sendGridClient struct {
	client *resty.Client
	apiKey string
	sender string
}

func newSendGridClient(apiKey, sender string) *sendGridClient {
	return &sendGridClient{
		client: resty.New().SetBaseURL(sendGridBaseURL),
		apiKey: apiKey,
		sender: sender,
	}
}

// enabled reports whether an API key was configured.
func (c *sendGridClient) enabled() bool {
	return c.apiKey != ""
}

// Request body shapes for POST /v3/mail/send.
type sendGridAddress struct {
	Email string `json:"email"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridMail struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
}

func (c *sendGridClient) send(ctx context.Context, msg message) error {
	body := sendGridMail{
		Personalizations: []sendGridPersonalization{{To: []sendGridAddress{{Email: msg.to}}}},
		From:             sendGridAddress{Email: c.sender},
		Subject:          msg.subject,
		Content:          []sendGridContent{{Type: "text/plain", Value: msg.text}},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/v3/mail/send")
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
