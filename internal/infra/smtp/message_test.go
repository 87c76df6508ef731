package smtp

import (
	"strings"
	"testing"
	"time"

	"orderalert/internal/domain/dispatch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageIDUsesSenderDomain(t *testing.T) {
	t.Parallel()

	id := newMessageID("noreply@example.com")
	assert.True(t, strings.HasSuffix(id, "@example.com"), "got %q", id)
	assert.NotEqual(t, id, newMessageID("noreply@example.com"), "ids must be unique")

	assert.True(t, strings.HasSuffix(newMessageID("not-an-address"), "@localhost"))
}

func TestBuildRawMultipartMessage(t *testing.T) {
	t.Parallel()

	msg := &dispatch.Message{
		FromName: "Toko Jejak",
		To:       []string{"admin@example.com"},
		CC:       []string{"ops@example.com"},
		Subject:  "Pemberitahuan Pesanan INV-001 - Budi",
		HTML:     "<p>Rp150.000</p>",
		Text:     "Rp150.000",
	}

	date := time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC)
	raw := string(buildRaw(msg, "noreply@example.com", "abc-123@example.com", date))

	header, body, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found)

	assert.Contains(t, header, "From: Toko Jejak <noreply@example.com>")
	assert.Contains(t, header, "To: admin@example.com")
	assert.Contains(t, header, "Cc: ops@example.com")
	assert.Contains(t, header, "Subject: Pemberitahuan Pesanan INV-001 - Budi")
	assert.Contains(t, header, "Message-ID: <abc-123@example.com>")
	assert.Contains(t, header, "Date: Tue, 01 Sep 2026 09:30:00 +0000")
	assert.Contains(t, header, "MIME-Version: 1.0")
	assert.Contains(t, header, "Content-Type: multipart/alternative; boundary=")

	// Plain text part precedes the HTML part so non-HTML clients pick it up.
	assert.Contains(t, body, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, body, "Content-Type: text/html; charset=UTF-8")
	assert.Less(t,
		strings.Index(body, "text/plain"),
		strings.Index(body, "text/html"),
	)
	assert.Contains(t, body, "<p>Rp150.000</p>")
}

func TestBuildRawSingleBodyFallbacks(t *testing.T) {
	t.Parallel()

	htmlOnly := &dispatch.Message{To: []string{"admin@example.com"}, Subject: "s", HTML: "<p>hi</p>"}
	raw := string(buildRaw(htmlOnly, "noreply@example.com", "id@example.com", time.Now()))
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8")
	assert.NotContains(t, raw, "multipart/alternative")

	textOnly := &dispatch.Message{To: []string{"admin@example.com"}, Subject: "s", Text: "hi"}
	raw = string(buildRaw(textOnly, "noreply@example.com", "id@example.com", time.Now()))
	assert.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8")
}

func TestEncodeSubject(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Pemberitahuan Pesanan INV-001", encodeSubject("Pemberitahuan Pesanan INV-001"))

	encoded := encodeSubject("Pesanan 🛒 INV-001")
	assert.True(t, strings.HasPrefix(encoded, "=?utf-8?q?"), "got %q", encoded)
}
