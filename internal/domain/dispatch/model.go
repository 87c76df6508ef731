package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Field is an order attribute that storefronts supply as a JSON string,
// number, boolean, or null. Missing-ness follows the upstream client's
// truthiness convention: "", null, false, and numeric 0 all count as
// missing, while the string "0" counts as present. This looseness is
// deliberate and pinned by tests; do not harden it here.
type Field struct {
	value string
	falsy bool
}

// NewField builds a present Field from a plain string. Empty strings are missing.
func NewField(s string) Field {
	return Field{value: s}
}

// UnmarshalJSON accepts strings, numbers, booleans, and null.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = Field{falsy: true}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field{value: s, falsy: s == ""}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*f = Field{value: strconv.FormatBool(b), falsy: !b}
	case '{', '[':
		return fmt.Errorf("field must be a scalar, got %c", data[0])
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		v, _ := n.Float64()
		*f = Field{value: n.String(), falsy: v == 0}
	}
	return nil
}

// MarshalJSON round-trips the field as a string.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.value)
}

// String returns the field's textual value, empty when absent.
func (f Field) String() string {
	return f.value
}

// Missing reports whether the field counts as absent for validation.
func (f Field) Missing() bool {
	return f.value == "" || f.falsy
}

// Amount coerces the field to an integer amount. Non-numeric and missing
// values coerce to zero, mirroring the upstream client's parseInt handling;
// fractional values truncate.
func (f Field) Amount() int64 {
	s := strings.TrimSpace(f.value)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(v)
	}
	return 0
}

// OrderRecord is the externally supplied order payload, immutable within a
// request. The invoice number doubles as the caller's idempotency and
// correlation key; the dispatcher itself never deduplicates on it.
type OrderRecord struct {
	InvoiceNumber Field `json:"invoiceNumber"`
	FullName      Field `json:"fullName"`
	Email         Field `json:"email"`
	PhoneNumber   Field `json:"phoneNumber"`
	Address       Field `json:"address"`
	City          Field `json:"city"`
	ProductName   Field `json:"productName"`
	SKU           Field `json:"sku"`
	Quantity      Field `json:"quantity"`
	UnitPrice     Field `json:"unitPrice"`
	TotalPayment  Field `json:"totalPayment"`
	PaymentMethod Field `json:"paymentMethod"`
	Status        Field `json:"status"`
	Courier       Field `json:"kurir"`
	Notes         Field `json:"catatan"`
	Timestamp     Field `json:"timestamp"`
	Dropshipper   Field `json:"dropshipper"`
	Affiliate     Field `json:"affiliate"`
}

// DispatchRequest is the API request payload. The original storefront
// client wraps the record in an orderData envelope; both the wrapped and
// the bare shape are accepted.
type DispatchRequest struct {
	Order OrderRecord
}

// UnmarshalJSON unwraps an orderData envelope when present, otherwise
// binds the body as the record itself.
func (r *DispatchRequest) UnmarshalJSON(data []byte) error {
	var envelope struct {
		OrderData json.RawMessage `json:"orderData"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	if len(envelope.OrderData) > 0 && string(envelope.OrderData) != "null" {
		return json.Unmarshal(envelope.OrderData, &r.Order)
	}
	return json.Unmarshal(data, &r.Order)
}

// Message is the composed notification, constructed once per request by
// the renderer and consumed once by the transport. Never persisted.
type Message struct {
	FromName    string
	FromAddress string
	To          []string
	CC          []string
	Subject     string
	HTML        string
	Text        string
}

// Receipt is the successful delivery outcome.
type Receipt struct {
	MessageID string `json:"messageId"`
	Invoice   string `json:"-"`
}
