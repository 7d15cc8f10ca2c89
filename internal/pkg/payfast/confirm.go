package payfast

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const confirmTimeout = 10 * time.Second

// validResponse is the literal body PayFast returns for a genuine
// notification; anything else means unconfirmed.
const validResponse = "VALID"

// Confirmer re-validates a notification against PayFast's own servers.
type Confirmer struct {
	client *resty.Client
	url    string
}

// NewConfirmer builds a confirmation client for the configured mode.
func NewConfirmer(cfg Config) *Confirmer {
	return &Confirmer{
		client: resty.New().SetTimeout(confirmTimeout),
		url:    cfg.ValidateURL(),
	}
}

// Confirm posts the canonical param string (without passphrase) back to the
// validation endpoint. Network failure or any body other than VALID reports
// false; the caller decides how much weight to give that.
func (c *Confirmer) Confirm(ctx context.Context, fields OrderedFields) (bool, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody(CanonicalParamString(fields, "")).
		Post(c.url)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(resp.String()) == validResponse, nil
}
