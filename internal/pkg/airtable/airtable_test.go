package airtable

import (
	"context"
	"errors"
	"testing"
)

func TestRequestErrorPermanent(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{400, true},
		{401, true},
		{404, true},
		{422, true},
		{429, false},
		{500, false},
		{502, false},
		{503, false},
	}
	for _, tt := range tests {
		e := &RequestError{StatusCode: tt.status}
		if got := e.Permanent(); got != tt.want {
			t.Errorf("Permanent() for status %d = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestRequestErrorMessage(t *testing.T) {
	e := &RequestError{StatusCode: 422, Body: `{"error":"INVALID_VALUE_FOR_COLUMN"}`}
	want := `airtable: status 422: {"error":"INVALID_VALUE_FOR_COLUMN"}`
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestUnconfiguredClientRejectsWithoutNetwork(t *testing.T) {
	c := &Client{}
	err := c.CreateSubmissionRecord(context.Background(), SubmissionRecord{SubmissionID: "SUB-20260121-ABC123"})

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
	if !reqErr.Permanent() {
		t.Fatalf("missing credentials must never be retried")
	}
}
