package smtp

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime"
	"net/mail"
	"strings"
	"time"

	"orderalert/internal/domain/dispatch"

	"github.com/google/uuid"
)

// newMessageID builds the RFC 5322 Message-ID stamped on every submission.
// net/smtp does not surface the server's queue identifier, so this header
// is the delivery receipt: the receiving provider preserves it, keeping the
// ID searchable end to end.
func newMessageID(fromAddress string) string {
	domain := "localhost"
	if at := strings.LastIndex(fromAddress, "@"); at >= 0 && at < len(fromAddress)-1 {
		domain = fromAddress[at+1:]
	}
	return uuid.New().String() + "@" + domain
}

// buildRaw assembles the wire form of a message: headers plus a
// multipart/alternative body carrying the plain-text and HTML renditions.
func buildRaw(msg *dispatch.Message, from, messageID string, date time.Time) []byte {
	fromHeader := from
	if msg.FromName != "" {
		fromHeader = (&mail.Address{Name: msg.FromName, Address: from}).String()
	}

	body, contentType := buildBody(msg)

	var headers []string
	headers = append(headers, fmt.Sprintf("From: %s", fromHeader))
	headers = append(headers, fmt.Sprintf("To: %s", strings.Join(msg.To, ", ")))
	if len(msg.CC) > 0 {
		headers = append(headers, fmt.Sprintf("Cc: %s", strings.Join(msg.CC, ", ")))
	}
	headers = append(headers, fmt.Sprintf("Subject: %s", encodeSubject(msg.Subject)))
	headers = append(headers, fmt.Sprintf("Message-ID: <%s>", messageID))
	headers = append(headers, fmt.Sprintf("Date: %s", date.Format(time.RFC1123Z)))
	headers = append(headers, "MIME-Version: 1.0")
	headers = append(headers, fmt.Sprintf("Content-Type: %s", contentType))

	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)
}

func buildBody(msg *dispatch.Message) (body string, contentType string) {
	if msg.HTML != "" && msg.Text != "" {
		boundary := multipartBoundary()
		var sb strings.Builder
		sb.WriteString("This is a multipart message in MIME format.\r\n")
		fmt.Fprintf(&sb, "--%s\r\n", boundary)
		sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		sb.WriteString("\r\n")
		sb.WriteString(msg.Text)
		sb.WriteString("\r\n")
		fmt.Fprintf(&sb, "--%s\r\n", boundary)
		sb.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		sb.WriteString("\r\n")
		sb.WriteString(msg.HTML)
		sb.WriteString("\r\n")
		fmt.Fprintf(&sb, "--%s--", boundary)
		return sb.String(), fmt.Sprintf("multipart/alternative; boundary=%s", boundary)
	}

	if msg.HTML != "" {
		return msg.HTML, "text/html; charset=UTF-8"
	}

	return msg.Text, "text/plain; charset=UTF-8"
}

// encodeSubject Q-encodes the subject when it contains non-ASCII runes.
func encodeSubject(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.QEncoding.Encode("utf-8", s)
		}
	}
	return s
}

func multipartBoundary() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "orderalert-boundary-fallback"
	}
	return "orderalert-boundary-" + hex.EncodeToString(b[:])
}
