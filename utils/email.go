package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

// NotifyContactMessage emails the clinic inbox about a new contact-form
// message. Best-effort and asynchronous; a failed send is only logged.
func NotifyContactMessage(name, phone, email, message string) {
	to := os.Getenv("CONTACT_NOTIFY_EMAIL")
	if to == "" {
		return
	}

	go func() {
		subject := "رسالة جديدة من نموذج التواصل"
		body := fmt.Sprintf(`<h3>رسالة جديدة من موقع العيادة</h3>
<p><b>الاسم:</b> %s</p>
<p><b>الهاتف:</b> %s</p>
<p><b>البريد الإلكتروني:</b> %s</p>
<p><b>الرسالة:</b></p>
<p>%s</p>`, name, phone, email, message)
		if err := SendEmail(to, subject, body); err != nil {
			log.Printf("Failed to send contact notification: %v", err)
		}
	}()
}
