// Package mailer envoie les emails transactionnels via l'API HTTP de Resend.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danmaket/marketplace-api/pkg/config"
)

const resendEndpoint = "https://api.resend.com/emails"

// Mailer port d'envoi d'emails.
type Mailer interface {
	Send(ctx context.Context, to, subject, message string) error
}

// ResendMailer implémentation de Mailer sur l'API Resend.
type ResendMailer struct {
	apiKey string
	from   string
	client *http.Client
}

var _ Mailer = (*ResendMailer)(nil)

// NewResendMailer construit le client Resend.
func NewResendMailer(cfg config.MailConfig) *ResendMailer {
	return &ResendMailer{
		apiKey: cfg.APIKey,
		from:   cfg.From,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send envoie un email HTML au destinataire. Le message est du texte brut :
// il est échappé puis habillé dans le gabarit de la plateforme.
func (m *ResendMailer) Send(ctx context.Context, to, subject, message string) error {
	payload, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    renderHTML(subject, message),
	})
	if err != nil {
		return fmt.Errorf("mailer: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("mailer: requête: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: envoi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mailer: resend HTTP %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// renderHTML habille le message dans le gabarit marque de la plateforme.
// Le contenu utilisateur est échappé avant insertion, les retours à la
// ligne deviennent des <br>.
func renderHTML(subject, message string) string {
	safe := html.EscapeString(message)
	safe = strings.ReplaceAll(safe, "\n", "<br>")

	var b strings.Builder
	b.WriteString(`<div style="font-family:Arial,Helvetica,sans-serif;max-width:600px;margin:0 auto;border:1px solid #e5e7eb;border-radius:8px;overflow:hidden">`)
	b.WriteString(`<div style="background:#1d4ed8;padding:20px 24px"><h1 style="color:#ffffff;font-size:20px;margin:0">DanMaket</h1></div>`)
	b.WriteString(`<div style="padding:24px">`)
	b.WriteString(`<h2 style="font-size:16px;color:#111827;margin-top:0">` + html.EscapeString(subject) + `</h2>`)
	b.WriteString(`<p style="color:#374151;line-height:1.6">` + safe + `</p>`)
	b.WriteString(`</div>`)
	b.WriteString(`<div style="background:#f9fafb;padding:16px 24px;color:#6b7280;font-size:12px">`)
	b.WriteString(`Cet email vous a été envoyé par l'équipe DanMaket. Merci de ne pas y répondre directement.`)
	b.WriteString(`</div></div>`)
	return b.String()
}
