package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-tag-registry/internal/platform/httpclient"
	"pet-tag-registry/internal/platform/logger"
	"pet-tag-registry/internal/ports/notify"
)

const (
	eventTagStatusChanged     = "tag_status_changed"
	eventShippingBatchCreated = "shipping_batch_created"
	eventReplacementCreated   = "replacement_created"
)

// Notifier implementa notify.Notifier posteando cada evento como JSON a un
// webhook (el servicio de notificaciones arma los emails a partir de esto).
type Notifier struct {
	client *httpclient.Client
	url    string
	log    logger.Logger
}

type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func New(webhookURL string, log logger.Logger) (*Notifier, error) {
	webhookURL = strings.TrimSpace(webhookURL)
	if webhookURL == "" {
		return nil, errors.New("webhook: empty url")
	}
	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return nil, errors.New("webhook: invalid url")
	}
	return &Notifier{
		client: httpclient.New(5 * time.Second),
		url:    webhookURL,
		log:    log,
	}, nil
}

// NewWithTransport existe para tests (inyecta RoundTripper).
func NewWithTransport(webhookURL string, log logger.Logger, tr http.RoundTripper) (*Notifier, error) {
	n, err := New(webhookURL, log)
	if err != nil {
		return nil, err
	}
	n.client = httpclient.NewWithTransport(5*time.Second, tr)
	return n, nil
}

func (n *Notifier) TagStatusChanged(ctx context.Context, ev notify.TagStatusChanged) error {
	return n.post(ctx, eventTagStatusChanged, ev)
}

func (n *Notifier) ShippingBatchCreated(ctx context.Context, ev notify.ShippingBatchCreated) error {
	return n.post(ctx, eventShippingBatchCreated, ev)
}

func (n *Notifier) ReplacementCreated(ctx context.Context, ev notify.ReplacementCreated) error {
	return n.post(ctx, eventReplacementCreated, ev)
}

func (n *Notifier) post(ctx context.Context, eventType string, data any) error {
	err := n.client.DoJSON(ctx, http.MethodPost, n.url, nil, envelope{Type: eventType, Data: data}, nil)
	if err != nil && n.log != nil {
		n.log.Warn("webhook notify failed", map[string]any{
			"event": eventType,
			"error": err.Error(),
		})
	}
	return err
}
