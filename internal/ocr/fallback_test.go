package ocr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardText_TypicalCard(t *testing.T) {
	raw := strings.Join([]string{
		"Jane Doe",
		"Acme Plumbing Solutions Pvt Ltd",
		"jane@acme.example",
		"+91 98765 43210",
		"14 Church Street, Bangalore, 560001",
	}, "\n")

	fields := ParseCardText(raw)
	assert.Equal(t, "Jane Doe", fields["name"])
	assert.Equal(t, "Acme Plumbing Solutions Pvt Ltd", fields["company"])
	assert.Equal(t, "jane@acme.example", fields["email"])
	require.Contains(t, fields, "phone")
	assert.Equal(t, "+91 98765 43210", fields["phone"])
	assert.Equal(t, "14 Church Street, Bangalore, 560001", fields["address"])
}

func TestParseCardText_LabeledLines(t *testing.T) {
	raw := "Name: John Smith\nPhone: +1 555 0100\nEmail: john@x.com\nServices: AC repair"
	fields := ParseCardText(raw)
	assert.Equal(t, "John Smith", fields["name"])
	assert.Equal(t, "+1 555 0100", fields["phone"])
	assert.Equal(t, "john@x.com", fields["email"])
	assert.Equal(t, "AC repair", fields["services"])
}

func TestParseCardText_FuzzyLabels(t *testing.T) {
	// OCR noise in labels still binds via fuzzy matching.
	fields := ParseCardText("Emall: jane@x.com")
	assert.Equal(t, "jane@x.com", fields["email"])
}

func TestParseCardText_IgnoresWebsiteLines(t *testing.T) {
	fields := ParseCardText("https://acme.example\nJane Doe")
	assert.Equal(t, "Jane Doe", fields["name"])
	assert.NotContains(t, fields, "email")
}

func TestParseCardText_NeverFails(t *testing.T) {
	for _, raw := range []string{
		"",
		"   \n\n\t  ",
		"!!!@@@###",
		strings.Repeat("a", 10000),
		"{{{{{]]]]",
	} {
		assert.NotPanics(t, func() { ParseCardText(raw) })
	}
	assert.Empty(t, ParseCardText(""))
}

func TestParseCardText_ServicesCue(t *testing.T) {
	fields := ParseCardText("Jane Doe\nWedding photography and design")
	assert.Equal(t, "Wedding photography and design", fields["services"])
}
