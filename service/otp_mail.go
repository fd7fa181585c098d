// Package service holds the pieces of business logic shared between
// handlers
package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer dispatches one-time passcodes. Abstracted so handler tests
// don't need an SMTP server.
type Mailer interface {
	SendOTP(code, sendTo string) error
}

// SMTPMailer sends passcodes through the configured SMTP relay.
type SMTPMailer struct{}

func (SMTPMailer) SendOTP(code, sendTo string) error {
	from := viper.GetString("mail.sender")
	if sendTo == from {
		return errors.New("invalid email address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", sendTo)
	m.SetHeader("Subject", "Your StoreIt login code")
	m.SetBody("text/html", fmt.Sprintf(
		"Your one-time login code is <b>%v</b>.<br><br>It expires in %v minutes. If you didn't request it you can ignore this mail.",
		code, viper.GetInt("otp.ttl_minutes")))

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		from,
		viper.GetString("mail.password"),
	)

	return d.DialAndSend(m)
}
