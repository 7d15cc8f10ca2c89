package payfast

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

// SignatureField terminates ITN signature canonicalization. Fields after it
// (normally there are none) are excluded from the digest.
const SignatureField = "signature"

// encodeValue URL-encodes a value with PayFast's space-as-plus convention.
// QueryEscape already emits "+" for spaces; the replace guards the literal
// "%20" sequences the provider never accepts.
func encodeValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "%20", "+")
}

// CanonicalParamString produces the exact string PayFast hashes: non-empty
// fields in received order up to (excluding) the signature field, each value
// encoded, joined with "&", with the passphrase appended last when set.
func CanonicalParamString(fields OrderedFields, passphrase string) string {
	pairs := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		if f.Key == SignatureField {
			break
		}
		if f.Value == "" {
			continue
		}
		pairs = append(pairs, f.Key+"="+encodeValue(f.Value))
	}
	if passphrase != "" {
		pairs = append(pairs, "passphrase="+encodeValue(passphrase))
	}
	return strings.Join(pairs, "&")
}

// Sign computes the lowercase hex MD5 digest over the canonical param string.
func Sign(fields OrderedFields, passphrase string) string {
	sum := md5.Sum([]byte(CanonicalParamString(fields, passphrase)))
	return hex.EncodeToString(sum[:])
}

// VerifySignature recomputes the ITN signature over the received field order
// and compares it case-insensitively against the payload's signature field.
// A missing signature field never validates.
func VerifySignature(fields OrderedFields, passphrase string) bool {
	received := strings.TrimSpace(fields.Get(SignatureField))
	if received == "" {
		return false
	}
	return strings.EqualFold(Sign(fields, passphrase), received)
}
