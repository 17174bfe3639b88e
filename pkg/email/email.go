// pkg/email/email.go
package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

type EmailService struct {
	apiKey    string
	from      string
	adminTo   string
	templates *template.Template
	client    *http.Client
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type WelcomeEmailData struct {
	Name string
}

type ContactFormNotificationData struct {
	Name         string
	Email        string
	Phone        string
	BusinessType string
	Message      string
}

type SubscriptionStartedData struct {
	Name      string
	PlanName  string
	PriceMXN  float64
	PeriodEnd *time.Time
}

type SubscriptionCanceledData struct {
	Name      string
	PlanName  string
	PeriodEnd *time.Time
}

type SubscriptionExpiryWarningData struct {
	Name       string
	PlanName   string
	DaysLeft   int
	ExpiryDate time.Time
}

func NewEmailService(apiKey, adminTo string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      "DEVRI <hola@devri.com.mx>",
		adminTo:   adminTo,
		templates: templates,
		client:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", resendEndpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	log.Printf("Email %q sent to %s", subject, to)
	return nil
}

// Email sending methods
func (s *EmailService) SendWelcomeEmail(to, name string) error {
	data := WelcomeEmailData{Name: name}
	return s.sendTemplateEmail(to, "¡Bienvenido a DEVRI!", "welcome.html", data)
}

// SendContactFormNotification notifies the team inbox about a new contact
// form submission.
func (s *EmailService) SendContactFormNotification(data ContactFormNotificationData) error {
	return s.sendTemplateEmail(s.adminTo, "Nuevo mensaje de contacto", "contact_notification.html", data)
}

func (s *EmailService) SendSubscriptionStartedEmail(to, name, planName string, priceMXN float64, periodEnd *time.Time) error {
	data := SubscriptionStartedData{
		Name:      name,
		PlanName:  planName,
		PriceMXN:  priceMXN,
		PeriodEnd: periodEnd,
	}
	return s.sendTemplateEmail(to, "Tu suscripción está activa 🎉", "subscription_started.html", data)
}

func (s *EmailService) SendSubscriptionCanceledEmail(to, name, planName string, periodEnd *time.Time) error {
	data := SubscriptionCanceledData{
		Name:      name,
		PlanName:  planName,
		PeriodEnd: periodEnd,
	}
	return s.sendTemplateEmail(to, "Tu suscripción ha sido cancelada", "subscription_canceled.html", data)
}

func (s *EmailService) SendSubscriptionExpiryWarning(to, name, planName string, expiresAt time.Time, daysLeft int) error {
	data := SubscriptionExpiryWarningData{
		Name:       name,
		PlanName:   planName,
		DaysLeft:   daysLeft,
		ExpiryDate: expiresAt,
	}
	return s.sendTemplateEmail(to, "Tu suscripción está por terminar", "expiry_warning.html", data)
}
