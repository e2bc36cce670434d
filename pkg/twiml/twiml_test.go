package twiml

import (
	"strings"
	"testing"
)

func render(t *testing.T, r *Response) string {
	t.Helper()
	out, err := r.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return string(out)
}

func TestVoiceReply(t *testing.T) {
	got := render(t, VoiceReply("How can I help?", "/api/webhook/v1/voice"))

	if !strings.HasPrefix(got, "<?xml") {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(got, "<Say>How can I help?</Say>") {
		t.Errorf("missing Say verb: %s", got)
	}
	if !strings.Contains(got, `input="speech"`) || !strings.Contains(got, `action="/api/webhook/v1/voice"`) {
		t.Errorf("gather attributes missing: %s", got)
	}
	if strings.Contains(got, "<Hangup>") {
		t.Error("reply must keep the call open")
	}
}

func TestVoiceGoodbye(t *testing.T) {
	got := render(t, VoiceGoodbye("Sorry, wrong number."))

	if !strings.Contains(got, "Sorry, wrong number.") {
		t.Errorf("missing farewell text: %s", got)
	}
	if !strings.Contains(got, "<Hangup>") {
		t.Errorf("goodbye must hang up: %s", got)
	}
	if strings.Contains(got, "<Gather") {
		t.Error("goodbye must not gather further input")
	}
}

func TestValidateSignature(t *testing.T) {
	// Known vector from Twilio's request validation documentation.
	url := "https://mycompany.com/myapp.php?foo=1&bar=2"
	params := map[string]string{
		"CallSid": "CA1234567890ABCDE",
		"Caller":  "+14158675310",
		"Digits":  "1234",
		"From":    "+14158675310",
		"To":      "+18005551212",
	}

	if !ValidateSignature("12345", url, params, "RSOYDt4T1cUTdK1PDd93/VVr8B8=") {
		t.Error("documented signature should validate")
	}
	if ValidateSignature("12345", url, params, "bogus=") {
		t.Error("wrong signature should be rejected")
	}

	params["Digits"] = "9999"
	if ValidateSignature("12345", url, params, "RSOYDt4T1cUTdK1PDd93/VVr8B8=") {
		t.Error("tampered parameters should be rejected")
	}
}

func TestSMSReply(t *testing.T) {
	got := render(t, SMSReply("Thanks, we got your message & will reply soon."))

	if !strings.Contains(got, "<Message>Thanks, we got your message &amp; will reply soon.</Message>") {
		t.Errorf("message body not escaped or missing: %s", got)
	}
}
