// Package email sends the daily digest over SMTP with STARTTLS. The digest
// body is a compact HTML table and the run's CSV rides along as an
// attachment.
package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"log"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jobradar/internal/config"
	"jobradar/internal/domain"
	"jobradar/internal/secrets"
)

const dateLayout = "2006-01-02"

// Send delivers the digest for one run. Missing credentials log and skip
// rather than fail the run.
func Send(cfg config.Config, listings []domain.Listing, csvPath string, runDate time.Time) error {
	sender := cfg.Email.From
	recipient := cfg.Email.To
	if recipient == "" {
		recipient = sender
	}

	password := smtpPassword(cfg)
	if sender == "" || password == "" {
		log.Printf("[email] sender address or password not set, skipping send")
		return nil
	}

	host := cfg.Email.SMTPHost
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := cfg.Email.SMTPPort
	if port == 0 {
		port = 587
	}

	cities := strings.Join(cfg.Locations.Primary, " & ")
	subject := fmt.Sprintf("Daily Junior/Grad Jobs - %s - %s", cities, runDate.Format(dateLayout))

	msg, err := buildMessage(sender, recipient, subject, buildHTMLBody(listings, cities, runDate), csvPath)
	if err != nil {
		return fmt.Errorf("build digest message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	auth := smtp.PlainAuth("", sender, password, host)
	if err := smtp.SendMail(addr, auth, sender, []string{recipient}, msg); err != nil {
		return fmt.Errorf("send digest to %s: %w", recipient, err)
	}

	log.Printf("[email] sent %d listings to %s", len(listings), recipient)
	return nil
}

func smtpPassword(cfg config.Config) string {
	acct := secrets.SMTPKeyringAccount(cfg.Email.From, cfg.Email.SMTPHost)
	if pw, err := secrets.GetSMTPPassword(acct); err == nil {
		return pw
	}
	return os.Getenv("EMAIL_PASSWORD")
}

// buildHTMLBody renders the inline digest table.
func buildHTMLBody(listings []domain.Listing, cities string, runDate time.Time) string {
	var rows strings.Builder
	for _, l := range listings {
		color := "gray"
		if l.VisaScore >= 4 {
			color = "green"
		} else if l.VisaScore >= 0 && l.VisaScore <= 1 {
			color = "red"
		}
		score := "-"
		if l.VisaScore >= 0 {
			score = fmt.Sprintf("%d", l.VisaScore)
		}
		fmt.Fprintf(&rows,
			"<tr><td>%s</td><td>%s</td><td><a href=%q>%s</a></td><td>%s</td><td>%s</td><td>%s</td>"+
				`<td style="color:%s;font-weight:bold">%s</td><td>%s</td></tr>`+"\n",
			l.DateFound.Format(dateLayout),
			html.EscapeString(l.Source),
			l.URL,
			html.EscapeString(l.Title),
			html.EscapeString(l.Company),
			html.EscapeString(l.Location),
			html.EscapeString(strings.Join(l.Tags, ", ")),
			color,
			score,
			html.EscapeString(l.VisaReason),
		)
	}

	return fmt.Sprintf(`<html><body>
<h2>JobRadar - Daily Junior/Grad Jobs</h2>
<p>%s | %s | <strong>%d new listings</strong></p>
<table border="1" cellspacing="0" cellpadding="5" style="border-collapse:collapse;font-size:12px">
<thead style="background:#2c3e50;color:white">
  <tr>
    <th>Date</th><th>Source</th><th>Title</th><th>Company</th>
    <th>Location</th><th>Tags</th><th>Visa</th><th>Visa Reason</th>
  </tr>
</thead>
<tbody>
%s</tbody>
</table>
<p style="font-size:11px;color:#888">Sent by JobRadar - automated job aggregator</p>
</body></html>
`, html.EscapeString(cities), runDate.Format(dateLayout), len(listings), rows.String())
}

// buildMessage assembles a multipart/mixed RFC822 message with the HTML
// body and an optional base64 CSV attachment.
func buildMessage(from, to, subject, htmlBody, csvPath string) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	htmlHdr := textproto.MIMEHeader{}
	htmlHdr.Set("Content-Type", "text/html; charset=utf-8")
	part, err := mw.CreatePart(htmlHdr)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	if csvPath != "" {
		data, err := os.ReadFile(csvPath)
		if err == nil {
			attHdr := textproto.MIMEHeader{}
			attHdr.Set("Content-Type", "application/octet-stream")
			attHdr.Set("Content-Transfer-Encoding", "base64")
			attHdr.Set("Content-Disposition",
				fmt.Sprintf("attachment; filename=%q", filepath.Base(csvPath)))
			att, err := mw.CreatePart(attHdr)
			if err != nil {
				return nil, err
			}
			enc := base64.StdEncoding.EncodeToString(data)
			// 76-char lines per RFC 2045
			for len(enc) > 76 {
				if _, err := fmt.Fprintf(att, "%s\r\n", enc[:76]); err != nil {
					return nil, err
				}
				enc = enc[76:]
			}
			if _, err := fmt.Fprintf(att, "%s\r\n", enc); err != nil {
				return nil, err
			}
		} else {
			log.Printf("[email] attachment unreadable, sending without: %v", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
