package smtp

import (
	"fmt"
	"strings"
)

// Profile is the process-wide transport configuration: a named provider
// shortcut or an explicit host/port/TLS triple, plus the credential pair
// and the TLS-strictness flag.
type Profile struct {
	// Service names a well-known provider whose endpoint resolves from
	// the built-in table. When set, Host/Port/SSL are ignored.
	Service string

	// Explicit endpoint for providers without a named shortcut.
	Host string
	Port int
	// SSL selects implicit TLS from the first byte (ports like 465).
	// When false, STARTTLS is negotiated if the server offers it.
	SSL bool

	Username string
	Password string

	// InsecureTLS skips server certificate verification. For lab setups
	// with self-signed relays only.
	InsecureTLS bool
}

type endpoint struct {
	host string
	port int
	ssl  bool
}

// wellKnown maps named services to their SMTP endpoints, mirroring the
// provider shortcuts the storefront's previous stack recognized.
var wellKnown = map[string]endpoint{
	"gmail":      {"smtp.gmail.com", 465, true},
	"googlemail": {"smtp.gmail.com", 465, true},
	"yahoo":      {"smtp.mail.yahoo.com", 465, true},
	"zoho":       {"smtp.zoho.com", 465, true},
	"office365":  {"smtp.office365.com", 587, false},
	"outlook365": {"smtp.office365.com", 587, false},
	"brevo":      {"smtp-relay.brevo.com", 587, false},
	"mailgun":    {"smtp.mailgun.org", 587, false},
}

// resolve turns the profile into a dialable endpoint.
func (p Profile) resolve() (endpoint, error) {
	if p.Service != "" {
		ep, ok := wellKnown[strings.ToLower(p.Service)]
		if !ok {
			return endpoint{}, fmt.Errorf("unknown smtp service %q", p.Service)
		}
		return ep, nil
	}

	if p.Host == "" || p.Port == 0 {
		return endpoint{}, fmt.Errorf("smtp host and port are required when no service is named")
	}
	return endpoint{host: p.Host, port: p.Port, ssl: p.SSL}, nil
}
