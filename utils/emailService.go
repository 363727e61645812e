package utils

import (
	"artvista/config"
	"fmt"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendDriftReport emails the reconciliation findings to the ops
// address. No-op when sendgrid or the recipient is not configured.
func SendDriftReport(lines []string) error {
	if config.AppConfig.SendgridApiKey == "" || config.AppConfig.OpsEmail == "" {
		log.Println("Drift report email skipped: sendgrid not configured")
		return nil
	}

	from := mail.NewEmail("ArtVista Learning", config.AppConfig.EmailSender)
	to := mail.NewEmail("Ops", config.AppConfig.OpsEmail)
	subject := fmt.Sprintf("[ArtVista] Progress drift report (%d records)", len(lines))

	plain := strings.Join(lines, "\n")
	html := "<p>Stored vs recomputed completion percentages diverged for the records below. " +
		"Reported progress never regresses; review the catalog changes behind the drift.</p><pre>" +
		strings.Join(lines, "<br>") + "</pre>"

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Failed to send drift report email: %v", err)
		return err
	}
	if resp.StatusCode >= 300 {
		log.Printf("Drift report email returned status %d: %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}
