package api

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"storeit/storage-api/model"

	"github.com/spf13/viper"
)

// issueOTP creates a single-use passcode for the account and mails it.
// The row is written before the mail goes out so a slow SMTP relay
// can't race the user typing the code in.
func (a *API) issueOTP(accountID, email string) error {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return fmt.Errorf("failed to generate OTP code, %w", err)
	}

	code := fmt.Sprintf("%06d", n.Int64())
	ttl := time.Duration(viper.GetInt("otp.ttl_minutes")) * time.Minute

	err = a.DB.Create(&model.OTPToken{
		AccountID: accountID,
		Code:      code,
		ExpiresAt: time.Now().Add(ttl),
	}).Error
	if err != nil {
		return fmt.Errorf("failed to store OTP token, %w", err)
	}

	if err := a.Mail.SendOTP(code, email); err != nil {
		return fmt.Errorf("failed to send OTP mail, %w", err)
	}

	return nil
}
