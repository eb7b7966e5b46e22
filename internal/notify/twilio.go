package notify

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// The pack's HTTP surface is a single form POST, so this speaks to the
// Twilio Messages endpoint directly rather than pulling in an SDK.
const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioSender sends SMS through the Twilio REST API. The short client
// timeout keeps a slow carrier from stalling a scheduler tick or a
// request thread.
type TwilioSender struct {
	accountSID string
	authToken  string
	fromNumber string
	apiBase    string
	client     *http.Client
}

func NewTwilioSender(accountSID, authToken, fromNumber string) *TwilioSender {
	return &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		apiBase:    twilioAPIBase,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

// Configured reports whether all Twilio credentials are present.
func (s *TwilioSender) Configured() bool {
	return s.accountSID != "" && s.authToken != "" && s.fromNumber != ""
}

// Send delivers one SMS. Recipient must be in E.164 form (+1234567890).
func (s *TwilioSender) Send(recipient, body string) bool {
	if !s.Configured() {
		log.Println("[warn] twilio credentials not fully configured, skipping SMS")
		return false
	}
	if recipient == "" {
		return false
	}

	form := url.Values{}
	form.Set("To", recipient)
	form.Set("From", s.fromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.apiBase, s.accountSID)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		log.Printf("[error] build twilio request: %v", err)
		return false
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[error] send SMS to %s: %v", recipient, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("[error] twilio rejected SMS to %s: %d %s", recipient, resp.StatusCode, strings.TrimSpace(string(detail)))
		return false
	}

	log.Printf("[info] SMS sent to %s", recipient)
	return true
}
