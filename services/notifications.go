package services

import (
	"fmt"
	"log"
	"os"

	"condominium-server/models"
	"condominium-server/storage"

	mailjet "github.com/mailjet/mailjet-apiv3-go"
)

// NotifyReservationDecision emails the requester when an administrator
// approves or rejects a reservation, and records the notification. Email
// failures are logged, never surfaced: the transition has already been
// committed.
func NotifyReservationDecision(res *models.Reservation, user *models.User) {
	var kind, subject, body string
	switch res.Status {
	case models.ReservationApproved:
		kind = "reservation_approved"
		subject = "Your reservation was approved"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour reservation of %s on %s from %s to %s was approved.\nTotal cost: %.2f\n",
			user.FirstName, res.CommonArea.Name,
			res.ReservationDate.Format("2006-01-02"), res.StartTime, res.EndTime,
			res.TotalCost,
		)
	case models.ReservationRejected:
		kind = "reservation_rejected"
		subject = "Your reservation was rejected"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour reservation of %s on %s from %s to %s was rejected.\nReason: %s\n",
			user.FirstName, res.CommonArea.Name,
			res.ReservationDate.Format("2006-01-02"), res.StartTime, res.EndTime,
			res.AdminNotes,
		)
	default:
		return
	}

	notification := models.Notification{
		UserID:        user.ID,
		ReservationID: &res.ID,
		Kind:          kind,
		Subject:       subject,
		Body:          body,
	}

	if err := sendEmail(user.Email, subject, body); err != nil {
		log.Printf("[error] failed to send %s email to %s: %v", kind, user.Email, err)
	} else {
		notification.Sent = true
	}

	if storage.DB != nil {
		storage.DB.Create(&notification)
	}
}

func sendEmail(to, subject, body string) error {
	publicKey := os.Getenv("MJ_APIKEY_PUBLIC")
	privateKey := os.Getenv("MJ_APIKEY_PRIVATE")
	if publicKey == "" || privateKey == "" {
		return fmt.Errorf("mailjet keys are not configured")
	}

	client := mailjet.NewMailjetClient(publicKey, privateKey)
	messages := mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: os.Getenv("MJ_SENDER_EMAIL"),
					Name:  "Condominium Administration",
				},
				To: &mailjet.RecipientsV31{
					mailjet.RecipientV31{Email: to},
				},
				Subject:  subject,
				TextPart: body,
			},
		},
	}
	_, err := client.SendMailV31(&messages)
	return err
}
