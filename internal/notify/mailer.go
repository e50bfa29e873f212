package notify

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/smtp"
	"path"
	"time"

	"github.com/autoline-kr/dealer-backoffice/internal/config"
)

type Attachment struct {
	FileName string
	FileURL  string
}

type Email struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Mailer sends plain-text mail with file attachments over SMTP. The
// attachment bodies are fetched from their stored URLs at send time.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string

	httpClient *http.Client
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,

		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (m *Mailer) Send(email Email) error {
	if m.host == "" {
		return fmt.Errorf("smtp host is not configured")
	}

	msg, err := m.buildMessage(email)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return smtp.SendMail(addr, auth, m.from, []string{email.To}, msg)
}

func (m *Mailer) buildMessage(email Email) ([]byte, error) {
	const boundary = "dealer-backoffice-mail-boundary"

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", m.from)
	fmt.Fprintf(&buf, "To: %s\r\n", email.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	buf.WriteString(email.Body)
	buf.WriteString("\r\n")

	for _, att := range email.Attachments {
		content, err := m.fetch(att.FileURL)
		if err != nil {
			return nil, fmt.Errorf("fetch attachment %s: %w", att.FileName, err)
		}

		name := att.FileName
		if name == "" {
			name = path.Base(att.FileURL)
		}

		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		buf.WriteString("Content-Type: application/octet-stream\r\n")
		buf.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", name)

		encoded := base64.StdEncoding.EncodeToString(content)
		for len(encoded) > 76 {
			buf.WriteString(encoded[:76])
			buf.WriteString("\r\n")
			encoded = encoded[76:]
		}
		buf.WriteString(encoded)
		buf.WriteString("\r\n")
	}

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes(), nil
}

func (m *Mailer) fetch(url string) ([]byte, error) {
	resp, err := m.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
