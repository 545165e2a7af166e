package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resend/resend-go/v3"

	"rentwheels/internal/config"
)

// Sender covers every mail the lifecycle engine sends. All of them are
// best-effort: callers log failures and move on.
type Sender interface {
	SendVehiclePendingToOwner(ctx context.Context, toEmail, ownerName, vehicleName string) error
	SendVehicleSubmittedToAdmin(ctx context.Context, toEmail, ownerName, ownerEmail, vehicleName string) error
	SendVehicleApproved(ctx context.Context, toEmail, ownerName, vehicleName string) error
	SendVehicleRejected(ctx context.Context, toEmail, ownerName, vehicleName, reason string) error
	SendVehicleUnavailable(ctx context.Context, toEmail, ownerName, vehicleName, reason string) error
	SendVehicleAvailable(ctx context.Context, toEmail, ownerName, vehicleName string) error
}

type sender struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewSender(cfg *config.Config) Sender {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &sender{
		client:       client,
		config:       cfg,
		templatePath: "internal/service/templates/email",
	}
}

func (s *sender) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("RentWheels <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *sender) SendVehiclePendingToOwner(ctx context.Context, toEmail, ownerName, vehicleName string) error {
	data := struct {
		Title       string
		Name        string
		VehicleName string
		Link        string
	}{
		Title:       "Listing Received",
		Name:        ownerName,
		VehicleName: vehicleName,
		Link:        s.config.ClientURL + "/owner/vehicles",
	}
	return s.sendEmail(toEmail, "Your vehicle listing is pending review", "vehicle_pending.html", data)
}

func (s *sender) SendVehicleSubmittedToAdmin(ctx context.Context, toEmail, ownerName, ownerEmail, vehicleName string) error {
	data := struct {
		Title       string
		OwnerName   string
		OwnerEmail  string
		VehicleName string
		Link        string
	}{
		Title:       "New Vehicle Submission",
		OwnerName:   ownerName,
		OwnerEmail:  ownerEmail,
		VehicleName: vehicleName,
		Link:        s.config.AdminURL + "/vehicles",
	}
	return s.sendEmail(toEmail, "New vehicle submission pending review", "vehicle_submitted_admin.html", data)
}

func (s *sender) SendVehicleApproved(ctx context.Context, toEmail, ownerName, vehicleName string) error {
	data := struct {
		Title       string
		Name        string
		VehicleName string
		Link        string
	}{
		Title:       "Listing Approved",
		Name:        ownerName,
		VehicleName: vehicleName,
		Link:        s.config.ClientURL + "/owner/vehicles",
	}
	return s.sendEmail(toEmail, "Your vehicle listing has been approved", "vehicle_approved.html", data)
}

func (s *sender) SendVehicleRejected(ctx context.Context, toEmail, ownerName, vehicleName, reason string) error {
	data := struct {
		Title       string
		Name        string
		VehicleName string
		Reason      string
		Link        string
	}{
		Title:       "Listing Rejected",
		Name:        ownerName,
		VehicleName: vehicleName,
		Reason:      reason,
		Link:        s.config.ClientURL + "/owner/vehicles",
	}
	return s.sendEmail(toEmail, "Your vehicle listing was rejected", "vehicle_rejected.html", data)
}

func (s *sender) SendVehicleUnavailable(ctx context.Context, toEmail, ownerName, vehicleName, reason string) error {
	data := struct {
		Title       string
		Name        string
		VehicleName string
		Reason      string
		Link        string
	}{
		Title:       "Listing Marked Unavailable",
		Name:        ownerName,
		VehicleName: vehicleName,
		Reason:      reason,
		Link:        s.config.ClientURL + "/owner/vehicles",
	}
	return s.sendEmail(toEmail, "Your vehicle listing was marked unavailable", "vehicle_unavailable.html", data)
}

func (s *sender) SendVehicleAvailable(ctx context.Context, toEmail, ownerName, vehicleName string) error {
	data := struct {
		Title       string
		Name        string
		VehicleName string
		Link        string
	}{
		Title:       "Listing Available Again",
		Name:        ownerName,
		VehicleName: vehicleName,
		Link:        s.config.ClientURL + "/owner/vehicles",
	}
	return s.sendEmail(toEmail, "Your vehicle listing is available again", "vehicle_available.html", data)
}
