package dispatch

// requiredFields maps the JSON field names callers must supply to their
// accessors, in reporting order.
var requiredFields = []struct {
	name  string
	field func(*OrderRecord) Field
}{
	{"invoiceNumber", func(r *OrderRecord) Field { return r.InvoiceNumber }},
	{"fullName", func(r *OrderRecord) Field { return r.FullName }},
	{"productName", func(r *OrderRecord) Field { return r.ProductName }},
	{"totalPayment", func(r *OrderRecord) Field { return r.TotalPayment }},
}

// Validate checks the record for dispatch eligibility. It returns the names
// of all missing required fields at once so the caller can correct every
// problem in a single round trip; an empty slice means the record is accepted.
func Validate(rec *OrderRecord) []string {
	var missing []string
	for _, rf := range requiredFields {
		if rf.field(rec).Missing() {
			missing = append(missing, rf.name)
		}
	}
	return missing
}
