package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// WhatsAppClient sends templated WhatsApp messages through the Twilio REST
// API. All sends are best-effort: failures are logged and an empty message
// id is returned, never an error that could fail the calling operation.
// An unconfigured client (missing credentials) is valid and sends nothing.
type WhatsAppClient struct {
	accountSID string
	fromNumber string
	http       *resty.Client
}

func NewWhatsAppClient(accountSID, authToken, fromNumber string) *WhatsAppClient {
	if accountSID == "" || authToken == "" {
		log.Println("Twilio credentials not found. WhatsApp messaging will be disabled.")
		return &WhatsAppClient{}
	}

	client := resty.New().
		SetBaseURL("https://api.twilio.com/2010-04-01").
		SetBasicAuth(accountSID, authToken).
		SetTimeout(10 * time.Second)

	return &WhatsAppClient{
		accountSID: accountSID,
		fromNumber: fromNumber,
		http:       client,
	}
}

// SendEnrollmentMessage welcomes a user to a course after enrollment
func (w *WhatsAppClient) SendEnrollmentMessage(toPhone, userName, courseTitle, dashboardLink string) string {
	body := fmt.Sprintf(
		"Welcome to %s!\n\nHi %s,\n\nCongratulations on enrolling!\n\nAccess your course here: %s\n\nHappy Learning!",
		courseTitle, userName, dashboardLink,
	)
	return w.send(toPhone, body)
}

// SendEventRSVPMessage confirms an event registration
func (w *WhatsAppClient) SendEventRSVPMessage(toPhone, userName, eventTitle, eventDate, eventTime, eventLink string) string {
	link := ""
	if eventLink != "" {
		link = fmt.Sprintf("\n\nJoin here: %s", eventLink)
	}
	body := fmt.Sprintf(
		"Event Registration Confirmed!\n\nHi %s,\n\nYou're registered for: %s\n\nDate: %s\nTime: %s%s\n\nWe'll send you a reminder before the event!",
		userName, eventTitle, eventDate, eventTime, link,
	)
	return w.send(toPhone, body)
}

// SendCertificateMessage notifies a user that a certificate was issued
func (w *WhatsAppClient) SendCertificateMessage(toPhone, userName, courseTitle, certificateURL string) string {
	body := fmt.Sprintf(
		"Certificate Earned!\n\nCongratulations %s!\n\nYou've successfully completed: %s\n\nDownload your certificate: %s",
		userName, courseTitle, certificateURL,
	)
	return w.send(toPhone, body)
}

// SendReminderMessage reminds a registrant about an upcoming event
func (w *WhatsAppClient) SendReminderMessage(toPhone, userName, eventTitle, eventTime string) string {
	body := fmt.Sprintf(
		"Event Reminder!\n\nHi %s,\n\nDon't forget! \"%s\" starts in 24 hours.\n\nTime: %s\n\nSee you soon!",
		userName, eventTitle, eventTime,
	)
	return w.send(toPhone, body)
}

// send posts to the Twilio Messages endpoint and returns the message SID,
// or "" when disabled or on failure
func (w *WhatsAppClient) send(toPhone, body string) string {
	if w.http == nil {
		log.Println("WhatsApp client not initialized, skipping send")
		return ""
	}
	if toPhone == "" {
		return ""
	}
	if !strings.HasPrefix(toPhone, "whatsapp:") {
		toPhone = "whatsapp:" + toPhone
	}

	resp, err := w.http.R().
		SetFormData(map[string]string{
			"From": w.fromNumber,
			"To":   toPhone,
			"Body": body,
		}).
		Post(fmt.Sprintf("/Accounts/%s/Messages.json", w.accountSID))
	if err != nil {
		log.Printf("Failed to send WhatsApp message: %v", err)
		return ""
	}
	if resp.StatusCode() != 201 && resp.StatusCode() != 200 {
		log.Printf("Failed to send WhatsApp message: %s", resp.String())
		return ""
	}

	var msg struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(resp.Body(), &msg); err != nil {
		log.Printf("Failed to parse Twilio response: %v", err)
		return ""
	}

	log.Printf("WhatsApp message sent successfully: %s", msg.SID)
	return msg.SID
}
