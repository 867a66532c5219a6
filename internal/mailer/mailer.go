// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ron Ogden

// Package mailer implements fire-and-forget transactional email dispatch.
//
// Notifications are enqueued onto a bounded in-memory queue and delivered by
// a single background worker through the SendGrid HTTP API. Delivery is
// at-most-once: a full queue or a provider error drops the message with a
// log entry and nothing else. Callers never wait on delivery and never see
// its outcome.
package mailer

import (
	"context"
	"fmt"
	"sync"

	"github.com/therealrogden/taskkeeper/internal/config"
	"github.com/therealrogden/taskkeeper/internal/logger"
)

const defaultQueueSize = 64

// Dispatcher is the contract the services use to trigger account lifecycle
// mail. Both methods return immediately.
type Dispatcher interface {
	// SendWelcome enqueues the welcome mail sent after signup.
	SendWelcome(email, name string)

	// SendFarewell enqueues the farewell mail sent after account deletion.
	SendFarewell(email, name string)
}

// message is one queued notification.
type message struct {
	to      string
	subject string
	text    string
}

// Mailer is the queue-backed [Dispatcher] implementation. It also satisfies
// the workers.Worker interface so the application lifecycle can start and
// drain it alongside other background workers.
type Mailer struct {
	client *sendGridClient
	logger *logger.Logger

	queue chan message
	done  chan struct{}
	once  sync.Once
}

// NewMailer constructs a Mailer from configuration. An empty API key
// disables real delivery: messages are still consumed from the queue but
// only logged. That keeps local development working without a SendGrid
// account.
func NewMailer(cfg config.Mail, logger *logger.Logger) *Mailer {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	return &Mailer{
		client: newSendGridClient(cfg.APIKey, cfg.Sender),
		logger: logger,
		queue:  make(chan message, queueSize),
		done:   make(chan struct{}),
	}
}

// Run starts the delivery goroutine. Implements workers.Worker.
func (m *Mailer) Run() {
	go m.deliverLoop()
}

// Stop closes the queue and blocks until every already-enqueued message has
// been processed. Implements workers.Worker.
func (m *Mailer) Stop() {
	m.once.Do(func() {
		close(m.queue)
	})
	<-m.done
}

func (m *Mailer) SendWelcome(email, name string) {
	m.enqueue(message{
		to:      email,
		subject: "Thanks for joining!",
		text:    fmt.Sprintf("Welcome to the site, %s. Let me know how things are working out!", name),
	})
}

func (m *Mailer) SendFarewell(email, name string) {
	m.enqueue(message{
		to:      email,
		subject: "Sorry to see you go",
		text:    fmt.Sprintf("Goodbye, %s. Is there anything we could have done to keep you around?", name),
	})
}

// enqueue never blocks: when the queue is full the message is dropped.
// Losing a courtesy mail is preferable to stalling a signup response.
func (m *Mailer) enqueue(msg message) {
	select {
	case m.queue <- msg:
	default:
		m.logger.Warn().Str("to", msg.to).Str("subject", msg.subject).Msg("mail queue full, dropping message")
	}
}

func (m *Mailer) deliverLoop() {
	defer close(m.done)

	for msg := range m.queue {
		if !m.client.enabled() {
			m.logger.Debug().Str("to", msg.to).Str("subject", msg.subject).Msg("mail delivery disabled, dropping message")
			continue
		}

		if err := m.client.send(context.Background(), msg); err != nil {
			m.logger.Err(err).Str("to", msg.to).Str("subject", msg.subject).Msg("mail delivery failed")
			continue
		}

		m.logger.Debug().Str("to", msg.to).Str("subject", msg.subject).Msg("mail delivered")
	}
}
