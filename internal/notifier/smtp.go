package notifier

import (
	"fmt"
	"html"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/nbelhadj/maintenance-management/internal"
)

// SMTPMailer sends credential emails over SMTP using the configured account.
type SMTPMailer struct {
	cfg    internal.MailConfig
	dialer *gomail.Dialer
	logger *slog.Logger
}

func NewSMTPMailer(cfg internal.MailConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

// SendCredentials composes a dual text/HTML message carrying the generated
// username and temporary password. The company logo is embedded when one of
// the configured candidate paths exists; a missing logo is not an error.
func (m *SMTPMailer) SendCredentials(email, firstName, lastName, username, password, role string) bool {
	subject := fmt.Sprintf("Vos identifiants de connexion - Système de Gestion (%s)", capitalize(role))

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody(firstName, lastName, email, username, password, role))

	logoCID := ""
	if logo := m.findLogo(); logo != "" {
		msg.Embed(logo)
		logoCID = "logo.png"
	}
	msg.AddAlternative("text/html", htmlBody(firstName, lastName, email, username, password, role, logoCID))

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	timeout := m.cfg.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	select {
	case err := <-done:
		if err != nil {
			m.logger.Error("failed to send credentials email", "to", email, "error", err)
			return false
		}
	case <-time.After(timeout):
		m.logger.Error("credentials email timed out", "to", email, "timeout", timeout)
		return false
	}

	m.logger.Info("credentials email sent", "to", email, "username", username, "role", role)
	return true
}

// findLogo returns the first candidate logo path that exists on disk.
func (m *SMTPMailer) findLogo() string {
	for _, path := range m.cfg.LogoPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func plainBody(firstName, lastName, email, username, password, role string) string {
	closing := "Vous pouvez maintenant accéder au système avec vos identifiants."
	if role == "admin" {
		closing = "En tant qu'administrateur, vous avez accès à toutes les fonctionnalités du système."
	}

	return fmt.Sprintf(`Bonjour %s %s,

Votre compte %s a été créé avec succès. Voici vos identifiants de connexion :

Nom d'utilisateur : %s
Mot de passe temporaire : %s

IMPORTANT : Pour des raisons de sécurité, nous vous recommandons fortement de changer votre mot de passe lors de votre première connexion.

Informations de votre compte :
- Nom : %s
- Prénom : %s
- Email : %s

%s

Cordialement,
L'équipe de gestion système

---
Ce message a été généré automatiquement. Veuillez ne pas répondre à cet email.
`, firstName, lastName, role, username, password, lastName, firstName, email, closing)
}

func htmlBody(firstName, lastName, email, username, password, role, logoCID string) string {
	closing := "Vous pouvez maintenant accéder au système avec vos identifiants."
	if role == "admin" {
		closing = "En tant qu'administrateur, vous avez accès à toutes les fonctionnalités du système."
	}

	logo := ""
	if logoCID != "" {
		logo = fmt.Sprintf(`<img src="cid:%s" alt="logo" height="48"><br>`, logoCID)
	}

	return fmt.Sprintf(`<html><body>
%s
<p>Bonjour %s %s,</p>
<p>Votre compte <strong>%s</strong> a été créé avec succès. Voici vos identifiants de connexion :</p>
<ul>
  <li>Nom d'utilisateur : <strong>%s</strong></li>
  <li>Mot de passe temporaire : <strong>%s</strong></li>
</ul>
<p><strong>IMPORTANT :</strong> Pour des raisons de sécurité, nous vous recommandons fortement de changer votre mot de passe lors de votre première connexion.</p>
<p>%s</p>
<p>Cordialement,<br>L'équipe de gestion système</p>
<hr>
<p><small>Ce message a été généré automatiquement. Veuillez ne pas répondre à cet email.</small></p>
</body></html>`,
		logo,
		html.EscapeString(firstName), html.EscapeString(lastName),
		html.EscapeString(role),
		html.EscapeString(username), html.EscapeString(password),
		closing)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
