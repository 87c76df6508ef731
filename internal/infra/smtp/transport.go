package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"orderalert/internal/common"
	"orderalert/internal/domain/dispatch"
)

var _ dispatch.Transport = (*Transport)(nil)

// Transport is an SMTP-backed mail transport. It holds only resolved,
// read-only configuration, so one instance serves concurrent dispatches;
// every Verify and Send uses its own connection.
type Transport struct {
	host     string
	addr     string
	ssl      bool
	insecure bool
	auth     smtp.Auth
	from     string
}

// NewTransport resolves a profile into a connection-capable transport.
// Absent credentials are a configuration error: nothing downstream can
// succeed without them, and the operator has to act.
func NewTransport(profile Profile, fromAddress string) (*Transport, error) {
	if profile.Username == "" || profile.Password == "" {
		return nil, common.NewConfigError(common.CodeUnknown, "smtp credentials are not configured")
	}

	ep, err := profile.resolve()
	if err != nil {
		return nil, common.NewConfigError(common.CodeUnknown, err.Error())
	}

	return &Transport{
		host:     ep.host,
		addr:     net.JoinHostPort(ep.host, strconv.Itoa(ep.port)),
		ssl:      ep.ssl,
		insecure: profile.InsecureTLS,
		auth:     smtp.PlainAuth("", profile.Username, profile.Password, ep.host),
		from:     fromAddress,
	}, nil
}

// Verify performs the connectivity and authentication handshake: dial,
// STARTTLS where offered, AUTH, then a NOOP. Any failure here classifies
// as a configuration error.
func (t *Transport) Verify(ctx context.Context) error {
	c, err := t.dial(ctx)
	if err != nil {
		return classify(err, true)
	}
	defer c.Close()

	if err := c.Noop(); err != nil {
		return classify(err, true)
	}
	_ = c.Quit()
	return nil
}

// Send submits the composed message and returns the Message-ID stamped on
// it. Exactly one delivery attempt; failures classify as delivery errors
// since the transport already verified in this request.
func (t *Transport) Send(ctx context.Context, msg *dispatch.Message) (string, error) {
	recipients := make([]string, 0, len(msg.To)+len(msg.CC))
	recipients = append(recipients, msg.To...)
	recipients = append(recipients, msg.CC...)
	if len(recipients) == 0 {
		return "", common.NewConfigError(common.CodeUnknown, "no recipients configured")
	}

	c, err := t.dial(ctx)
	if err != nil {
		return "", classify(err, false)
	}
	defer c.Close()

	from := msg.FromAddress
	if from == "" {
		from = t.from
	}

	if err := c.Mail(from); err != nil {
		return "", classify(err, false)
	}
	for _, rcpt := range recipients {
		if err := c.Rcpt(rcpt); err != nil {
			return "", classify(err, false)
		}
	}

	w, err := c.Data()
	if err != nil {
		return "", classify(err, false)
	}

	messageID := newMessageID(from)
	raw := buildRaw(msg, from, messageID, time.Now())
	if _, err := w.Write(raw); err != nil {
		return "", classify(err, false)
	}
	if err := w.Close(); err != nil {
		return "", classify(err, false)
	}

	_ = c.Quit()
	return messageID, nil
}

// dial opens a connection and completes the TLS and AUTH handshake.
func (t *Transport) dial(ctx context.Context) (*smtp.Client, error) {
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", t.addr, err)
	}

	if t.ssl {
		tlsConn := tls.Client(conn, t.tlsConfig())
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			conn.Close()
			return nil, fmt.Errorf("tls handshake with %s: %w", t.host, err)
		}
		conn = tlsConn
	}

	c, err := smtp.NewClient(conn, t.host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp greeting from %s: %w", t.host, err)
	}

	if !t.ssl {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(t.tlsConfig()); err != nil {
				c.Close()
				return nil, fmt.Errorf("starttls with %s: %w", t.host, err)
			}
		}
	}

	if ok, _ := c.Extension("AUTH"); ok {
		if err := c.Auth(t.auth); err != nil {
			c.Close()
			return nil, fmt.Errorf("smtp auth with %s: %w", t.host, err)
		}
	}

	return c, nil
}

func (t *Transport) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName:         t.host,
		InsecureSkipVerify: t.insecure,
	}
}

// classify maps a transport failure onto the error taxonomy, preserving
// the server's reply code when one exists. Error strings from net/smtp
// carry server diagnostics only, never the credentials.
func classify(err error, verifying bool) error {
	code := common.CodeUnknown
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		code = strconv.Itoa(protoErr.Code)
	}

	if verifying {
		return common.NewConfigError(code, err.Error())
	}
	return common.NewDeliveryError(code, err.Error())
}
