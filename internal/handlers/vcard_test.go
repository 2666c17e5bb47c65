package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/models"
)

func TestEncodeVCard_FullCard(t *testing.T) {
	vcf := EncodeVCard(models.Card{
		Name:     "Jane Doe",
		Company:  "Acme Ltd",
		Phone:    "+1 555 0100",
		Email:    "jane@x.com",
		Services: "Plumbing",
		Address:  "12 Main St, Springfield",
	})

	lines := strings.Split(strings.TrimSuffix(vcf, "\r\n"), "\r\n")
	assert.Equal(t, "BEGIN:VCARD", lines[0])
	assert.Equal(t, "VERSION:3.0", lines[1])
	assert.Equal(t, "END:VCARD", lines[len(lines)-1])
	assert.Contains(t, lines, "FN:Jane Doe")
	assert.Contains(t, lines, "N:Doe;Jane;;;")
	assert.Contains(t, lines, "ORG:Acme Ltd")
	assert.Contains(t, lines, "TEL;TYPE=WORK,VOICE:+1 555 0100")
	assert.Contains(t, lines, "EMAIL;TYPE=WORK:jane@x.com")
	assert.Contains(t, lines, `ADR;TYPE=WORK:;;12 Main St\, Springfield;;;;`)
	assert.Contains(t, lines, "NOTE:Plumbing")
}

func TestEncodeVCard_SkipsEmptyFields(t *testing.T) {
	vcf := EncodeVCard(models.Card{Name: "Cher"})
	assert.NotContains(t, vcf, "ORG:")
	assert.NotContains(t, vcf, "TEL")
	assert.NotContains(t, vcf, "EMAIL")
	assert.NotContains(t, vcf, "ADR")
	assert.NotContains(t, vcf, "NOTE:")
	assert.Contains(t, vcf, "FN:Cher\r\n")
	assert.Contains(t, vcf, "N:Cher;;;;\r\n")
}

func TestEncodeVCard_EscapesReservedCharacters(t *testing.T) {
	vcf := EncodeVCard(models.Card{
		Name:    "Jane; Doe",
		Company: "Acme, Inc\\Co",
	})
	assert.Contains(t, vcf, `FN:Jane\; Doe`)
	assert.Contains(t, vcf, `ORG:Acme\, Inc\\Co`)
}
