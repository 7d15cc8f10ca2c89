package airtable

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kobusvdwalt/subscribeza/internal/pkg/env"
)

const requestTimeout = 15 * time.Second

// RequestError is a non-2xx Airtable response.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("airtable: status %d: %s", e.StatusCode, e.Body)
}

// Permanent reports whether the request must not be retried. Client errors
// are permanent except 429, which is the API telling us to back off.
func (e *RequestError) Permanent() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != http.StatusTooManyRequests
}

// SubmissionRecord is the row shape synced into the back-office base.
type SubmissionRecord struct {
	SubmissionID    string
	Email           string
	FirstName       string
	BusinessName    string
	FormDataJSON    string
	PaymentDataJSON string
}

// Client writes paid submissions into an Airtable base.
type Client struct {
	http  *resty.Client
	url   string
	token string
}

// NewClientFromEnv builds a client from AIRTABLE_* environment variables.
func NewClientFromEnv() *Client {
	baseID := env.GetEnv("AIRTABLE_BASE_ID", "")
	table := env.GetEnv("AIRTABLE_TABLE_NAME", "Subscribers")
	return &Client{
		http:  resty.New().SetTimeout(requestTimeout),
		url:   fmt.Sprintf("https://api.airtable.com/v0/%s/%s", baseID, table),
		token: env.GetEnv("AIRTABLE_API_TOKEN", ""),
	}
}

// Configured reports whether sync credentials are present.
func (c *Client) Configured() bool {
	return c.token != ""
}

// CreateSubmissionRecord appends one row. Returns *RequestError for non-2xx
// responses so the caller can classify retryability.
func (c *Client) CreateSubmissionRecord(ctx context.Context, record SubmissionRecord) error {
	if !c.Configured() {
		return &RequestError{StatusCode: http.StatusUnauthorized, Body: "AIRTABLE_API_TOKEN is not set"}
	}

	body := map[string]interface{}{
		"fields": map[string]interface{}{
			"Submission ID": record.SubmissionID,
			"Email":         record.Email,
			"First Name":    record.FirstName,
			"Business Name": record.BusinessName,
			"Form Data":     record.FormDataJSON,
			"Payment Data":  record.PaymentDataJSON,
		},
		"typecast": true,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(c.url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &RequestError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
