package mail

import (
	"encoding/json"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/kobusvdwalt/subscribeza/internal/pkg/env"
)

// SendOwnerNotification tells the business a new paid signup landed, with the
// full form and payment payloads inlined for manual review.
func SendOwnerNotification(submissionID, businessName, formDataJSON, paymentDataJSON string) error {
	to := env.GetEnv("OWNER_NOTIFY_EMAIL", "")
	if to == "" {
		return fmt.Errorf("OWNER_NOTIFY_EMAIL is not set")
	}

	subject := fmt.Sprintf("New paid subscription: %s (%s)", businessName, submissionID)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>New paid subscription</h2><p>Submission <strong>%s</strong> has completed payment.</p>", html.EscapeString(submissionID)))
	b.WriteString("<h3>Form data</h3>")
	b.WriteString(renderJSONTable(formDataJSON))
	b.WriteString("<h3>Payment data</h3>")
	b.WriteString("<pre>" + html.EscapeString(paymentDataJSON) + "</pre>")

	return SendMail(to, subject, b.String())
}

// SendCustomerWelcome sends the subscriber their confirmation email.
func SendCustomerWelcome(to, firstName, businessName, submissionID string) error {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = "there"
	}

	subject := "Welcome aboard - your subscription is active"
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Thanks for signing up%s. Your payment went through and your subscription is now active.</p>"+
			"<p>Your reference number is <strong>%s</strong>. Keep it handy if you ever contact support.</p>"+
			"<p>We'll be in touch shortly to get you set up.</p>",
		html.EscapeString(name),
		businessSuffix(businessName),
		html.EscapeString(submissionID),
	)

	return SendMail(to, subject, body)
}

func businessSuffix(businessName string) string {
	if strings.TrimSpace(businessName) == "" {
		return ""
	}
	return " " + html.EscapeString(businessName)
}

// renderJSONTable flattens a JSON object into a simple key/value table,
// falling back to a pre block when the payload is not an object.
func renderJSONTable(raw string) string {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return "<pre>" + html.EscapeString(raw) + "</pre>"
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("<table border=\"1\" cellpadding=\"4\">")
	for _, k := range keys {
		b.WriteString("<tr><td>" + html.EscapeString(k) + "</td><td>" + html.EscapeString(fmt.Sprintf("%v", data[k])) + "</td></tr>")
	}
	b.WriteString("</table>")
	return b.String()
}
