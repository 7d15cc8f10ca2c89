package payfast

import (
	"strings"
	"testing"
)

func itnFields(pairs ...[2]string) OrderedFields {
	fields := OrderedFields{}
	for _, p := range pairs {
		fields = fields.Append(p[0], p[1])
	}
	return fields
}

func TestCanonicalParamString(t *testing.T) {
	fields := itnFields(
		[2]string{"amount_gross", "0.00"},
		[2]string{"custom_str1", "SSS-20260101-ABC123"},
		[2]string{"payment_status", "COMPLETE"},
	)

	got := CanonicalParamString(fields, "")
	want := "amount_gross=0.00&custom_str1=SSS-20260101-ABC123&payment_status=COMPLETE"
	if got != want {
		t.Fatalf("CanonicalParamString = %q, want %q", got, want)
	}

	withSecret := CanonicalParamString(fields, "secret1")
	if withSecret != want+"&passphrase=secret1" {
		t.Fatalf("CanonicalParamString with passphrase = %q", withSecret)
	}
}

func TestCanonicalParamString_SkipsEmptyValues(t *testing.T) {
	fields := itnFields(
		[2]string{"a", "1"},
		[2]string{"empty", ""},
		[2]string{"b", "2"},
	)
	if got := CanonicalParamString(fields, ""); got != "a=1&b=2" {
		t.Fatalf("expected empty values skipped, got %q", got)
	}
}

func TestCanonicalParamString_SignatureTerminates(t *testing.T) {
	withTrailer := itnFields(
		[2]string{"a", "1"},
		[2]string{SignatureField, "deadbeef"},
		[2]string{"b", "2"},
	)
	plain := itnFields([2]string{"a", "1"})
	if CanonicalParamString(withTrailer, "") != CanonicalParamString(plain, "") {
		t.Fatalf("fields after the signature must be excluded")
	}
}

func TestCanonicalParamString_SpaceAsPlus(t *testing.T) {
	fields := itnFields([2]string{"item_name", "Acme Pty Ltd"})
	got := CanonicalParamString(fields, "")
	if got != "item_name=Acme+Pty+Ltd" {
		t.Fatalf("expected space-as-plus encoding, got %q", got)
	}
	if strings.Contains(got, "%20") {
		t.Fatalf("canonical string must never contain %%20: %q", got)
	}
}

func TestSign_EmptyPayload(t *testing.T) {
	// MD5 of the empty string; an empty payload is still hashable.
	if got := Sign(OrderedFields{}, ""); got != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Fatalf("Sign(empty) = %q", got)
	}
}

func TestSign_Deterministic(t *testing.T) {
	fields := itnFields(
		[2]string{"amount_gross", "0.00"},
		[2]string{"custom_str1", "SSS-20260101-ABC123"},
		[2]string{"payment_status", "COMPLETE"},
	)
	first := Sign(fields, "")
	second := Sign(fields, "")
	if first != second {
		t.Fatalf("Sign is not deterministic: %q vs %q", first, second)
	}
	if withSecret := Sign(fields, "secret1"); withSecret == first {
		t.Fatalf("changing the passphrase must change the digest")
	}
}

func TestVerifySignature_RoundTrip(t *testing.T) {
	base := itnFields(
		[2]string{"m_payment_id", "SUB-20260121-TEST01"},
		[2]string{"payment_status", "COMPLETE"},
		[2]string{"amount_gross", "99.00"},
	)
	signed := base.Append(SignatureField, Sign(base, "secret1"))

	if !VerifySignature(signed, "secret1") {
		t.Fatalf("expected signature to validate")
	}
	if VerifySignature(signed, "other-secret") {
		t.Fatalf("expected wrong passphrase to fail")
	}

	upper := base.Append(SignatureField, strings.ToUpper(Sign(base, "secret1")))
	if !VerifySignature(upper, "secret1") {
		t.Fatalf("expected case-insensitive comparison to validate")
	}
}

func TestVerifySignature_MissingSignatureField(t *testing.T) {
	fields := itnFields([2]string{"payment_status", "COMPLETE"})
	if VerifySignature(fields, "") {
		t.Fatalf("payload without a signature field must never validate")
	}
}

func TestVerifySignature_Tampered(t *testing.T) {
	base := itnFields(
		[2]string{"payment_status", "COMPLETE"},
		[2]string{"amount_gross", "99.00"},
	)
	sig := Sign(base, "")

	tampered := itnFields(
		[2]string{"payment_status", "COMPLETE"},
		[2]string{"amount_gross", "9999.00"},
	).Append(SignatureField, sig)
	if VerifySignature(tampered, "") {
		t.Fatalf("expected tampered payload to fail verification")
	}
}

func TestVerifySignature_OrderSensitivity(t *testing.T) {
	orderA := itnFields(
		[2]string{"amount_gross", "0.00"},
		[2]string{"custom_str1", "SSS-20260101-ABC123"},
		[2]string{"payment_status", "COMPLETE"},
	)
	orderB := itnFields(
		[2]string{"payment_status", "COMPLETE"},
		[2]string{"custom_str1", "SSS-20260101-ABC123"},
		[2]string{"amount_gross", "0.00"},
	)

	if CanonicalParamString(orderA, "") == CanonicalParamString(orderB, "") {
		t.Fatalf("different insertion orders must canonicalize differently")
	}

	// Each order validates against a signature computed over that same order.
	signedA := orderA.Append(SignatureField, Sign(orderA, ""))
	signedB := orderB.Append(SignatureField, Sign(orderB, ""))
	if !VerifySignature(signedA, "") || !VerifySignature(signedB, "") {
		t.Fatalf("each received order must validate against its own digest")
	}

	// A's digest over B's order must not validate.
	crossed := orderB.Append(SignatureField, Sign(orderA, ""))
	if VerifySignature(crossed, "") {
		t.Fatalf("a digest from a different field order must not validate")
	}
}
