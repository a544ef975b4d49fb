package auth

import "log"

// Mailer delivers the verification link issued at sign-up. Delivery is an
// external concern; the default implementation just logs the link, which is
// enough for local development and lets tests capture it.
type Mailer interface {
	SendVerificationLink(email, link string) error
}

type LogMailer struct{}

func (LogMailer) SendVerificationLink(email, link string) error {
	log.Printf("verification link for %s: %s", email, link)
	return nil
}
