package dto

// TwilioSMSWebhook is the form payload Twilio posts for an inbound SMS.
type TwilioSMSWebhook struct {
	From string `form:"From" validate:"required"`
	To   string `form:"To" validate:"required"`
	Body string `form:"Body" validate:"required"`
}

// TwilioVoiceWebhook is the form payload for an inbound call leg. Digits or
// SpeechResult carries the caller's input after a Gather.
type TwilioVoiceWebhook struct {
	From         string `form:"From" validate:"required"`
	To           string `form:"To" validate:"required"`
	CallSid      string `form:"CallSid"`
	Digits       string `form:"Digits"`
	SpeechResult string `form:"SpeechResult"`
}

// InboundEmailWebhook is the parsed-email payload from the inbound mail
// provider.
type InboundEmailWebhook struct {
	From    string `json:"from" form:"from" validate:"required,email"`
	To      string `json:"to" form:"to" validate:"required"`
	Subject string `json:"subject" form:"subject"`
	Text    string `json:"text" form:"text" validate:"required"`
}
