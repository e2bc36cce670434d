package twiml

import (
	"bytes"
	"encoding/xml"
)

// Response is the root TwiML document returned to Twilio webhooks.
type Response struct {
	XMLName xml.Name `xml:"Response"`
	Say     []Say    `xml:"Say,omitempty"`
	Gather  *Gather  `xml:"Gather,omitempty"`
	Message []string `xml:"Message,omitempty"`
	Hangup  *Hangup  `xml:"Hangup,omitempty"`
}

type Say struct {
	Voice string `xml:"voice,attr,omitempty"`
	Text  string `xml:",chardata"`
}

// Gather keeps a voice call open waiting for the caller's next utterance.
type Gather struct {
	Input   string `xml:"input,attr,omitempty"`
	Action  string `xml:"action,attr,omitempty"`
	Timeout int    `xml:"timeout,attr,omitempty"`
	Say     *Say   `xml:"Say,omitempty"`
}

type Hangup struct{}

// Render serializes the response with the XML declaration Twilio expects.
func (r *Response) Render() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// VoiceReply speaks text then gathers the caller's next input.
func VoiceReply(text, gatherAction string) *Response {
	return &Response{
		Say: []Say{{Text: text}},
		Gather: &Gather{
			Input:   "speech",
			Action:  gatherAction,
			Timeout: 5,
		},
	}
}

// VoiceGoodbye speaks text and ends the call.
func VoiceGoodbye(text string) *Response {
	return &Response{
		Say:    []Say{{Text: text}},
		Hangup: &Hangup{},
	}
}

// SMSReply wraps a short reply message.
func SMSReply(text string) *Response {
	return &Response{Message: []string{text}}
}
