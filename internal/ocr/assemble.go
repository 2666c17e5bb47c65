package ocr

import (
	"encoding/json"
	"strings"

	"github.com/Vigneshraghu10/Buzz-card-production-ready-sub001/internal/models"
)

// AssembleContact normalizes a raw key/value extraction result (from the
// JSON parse or the heuristic parser) into the canonical contact record.
// Pure and total: absent, null, empty, and literal "null" values all map to
// field-absence. Every other value is kept verbatim, so legitimate falsy
// strings like "0" survive; non-string values are flattened to their JSON
// text the way mixed-type model output has to be.
func AssembleContact(fields map[string]any) models.ParsedContact {
	return models.ParsedContact{
		Name:     normalizeField(fields["name"]),
		Company:  normalizeField(fields["company"]),
		Phone:    normalizeField(fields["phone"]),
		Email:    normalizeField(fields["email"]),
		Services: normalizeField(fields["services"]),
		Address:  normalizeField(fields["address"]),
	}
}

func normalizeField(v any) *string {
	if v == nil {
		return nil
	}
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	case []any:
		// Models occasionally return services as a list; join it.
		parts := make([]string, 0, len(t))
		for _, it := range t {
			if p := normalizeField(it); p != nil {
				parts = append(parts, *p)
			}
		}
		s = strings.Join(parts, ", ")
	default:
		b, _ := json.Marshal(t)
		s = strings.TrimSpace(string(b))
	}
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}
