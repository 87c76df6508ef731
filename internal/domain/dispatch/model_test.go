package dispatch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldUnmarshalTruthiness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		missing bool
		value   string
	}{
		{"string value", `"INV-001"`, false, "INV-001"},
		{"empty string", `""`, true, ""},
		{"null", `null`, true, ""},
		{"numeric zero", `0`, true, "0"},
		{"numeric nonzero", `150000`, false, "150000"},
		{"string zero stays present", `"0"`, false, "0"},
		{"false", `false`, true, "false"},
		{"true", `true`, false, "true"},
		{"float", `50.5`, false, "50.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var f Field
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.Equal(t, tt.missing, f.Missing())
			assert.Equal(t, tt.value, f.String())
		})
	}
}

func TestFieldUnmarshalRejectsComposites(t *testing.T) {
	t.Parallel()

	var f Field
	assert.Error(t, json.Unmarshal([]byte(`{"nested":true}`), &f))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &f))
}

func TestFieldAbsentCountsMissing(t *testing.T) {
	t.Parallel()

	var rec OrderRecord
	require.NoError(t, json.Unmarshal([]byte(`{"invoiceNumber":"INV-001"}`), &rec))
	assert.False(t, rec.InvoiceNumber.Missing())
	assert.True(t, rec.FullName.Missing())
	assert.True(t, rec.TotalPayment.Missing())
}

func TestFieldAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int64
	}{
		{`"150000"`, 150000},
		{`150000`, 150000},
		{`"50.9"`, 50},
		{`"  50000 "`, 50000},
		{`"abc"`, 0},
		{`""`, 0},
		{`null`, 0},
	}

	for _, tt := range tests {
		var f Field
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
		assert.Equal(t, tt.want, f.Amount(), "raw %s", tt.raw)
	}
}

func TestDispatchRequestUnwrapsOrderDataEnvelope(t *testing.T) {
	t.Parallel()

	var wrapped DispatchRequest
	require.NoError(t, json.Unmarshal(
		[]byte(`{"orderData":{"invoiceNumber":"INV-007","fullName":"Siti"}}`), &wrapped))
	assert.Equal(t, "INV-007", wrapped.Order.InvoiceNumber.String())
	assert.Equal(t, "Siti", wrapped.Order.FullName.String())

	var bare DispatchRequest
	require.NoError(t, json.Unmarshal(
		[]byte(`{"invoiceNumber":"INV-008","fullName":"Budi"}`), &bare))
	assert.Equal(t, "INV-008", bare.Order.InvoiceNumber.String())
	assert.Equal(t, "Budi", bare.Order.FullName.String())
}
