package ocr

import (
	"regexp"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Heuristic text-to-field extraction, used when the model's output cannot
// be parsed as JSON. Total over its input: any string in, a (possibly
// empty) field map out, never an error.

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`(\+?\d[\d\s\-().]{6,}\d)`)
	urlRe   = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
)

// fieldLabels maps label spellings seen on printed cards to result keys.
// Matching is fuzzy so OCR noise like "Emall" or "Phon" still binds.
var fieldLabels = map[string]string{
	"name":     "name",
	"company":  "company",
	"phone":    "phone",
	"mobile":   "phone",
	"tel":      "phone",
	"email":    "email",
	"mail":     "email",
	"services": "services",
	"address":  "address",
}

var companyCues = []string{
	"ltd", "limited", "llc", "llp", "inc", "pvt", "corp", "co.",
	"technologies", "solutions", "enterprises", "industries", "studio", "agency",
}

var addressCues = []string{
	"street", "st.", "road", "rd", "avenue", "ave", "lane", "floor",
	"block", "sector", "nagar", "city", "suite", "building", "colony",
}

var serviceCues = []string{
	"service", "consulting", "design", "development", "repair",
	"marketing", "photography", "catering", "training",
}

// ParseCardText assigns lines and tokens of a free-form card transcription
// to contact fields using pattern cues. Labeled lines win over guesses.
func ParseCardText(raw string) map[string]any {
	out := make(map[string]any)
	metric := metrics.NewJaroWinkler()

	lines := strings.Split(raw, "\n")
	var leftover []string

	for _, ln := range lines {
		l := strings.TrimSpace(ln)
		if l == "" {
			continue
		}

		// "Label: value" lines are the strongest signal.
		if key, val, ok := splitLabeledLine(l, metric); ok && val != "" {
			if _, seen := out[key]; !seen {
				out[key] = val
			}
			continue
		}

		if m := emailRe.FindString(l); m != "" {
			if _, seen := out["email"]; !seen {
				out["email"] = m
			}
			l = strings.TrimSpace(strings.Replace(l, m, "", 1))
			if l == "" {
				continue
			}
		}

		// Strip URLs so a website line is not mistaken for anything else.
		if urlRe.MatchString(l) {
			l = strings.TrimSpace(urlRe.ReplaceAllString(l, ""))
			if l == "" {
				continue
			}
		}

		if m := phoneRe.FindString(l); m != "" && digitCount(m) >= 7 {
			if _, seen := out["phone"]; !seen {
				out["phone"] = strings.TrimSpace(m)
			}
			l = strings.TrimSpace(strings.Replace(l, m, "", 1))
			if l == "" {
				continue
			}
		}

		leftover = append(leftover, l)
	}

	// Company: longest leftover line carrying a company-suffix cue.
	if _, seen := out["company"]; !seen {
		if best := longestLineWithCue(leftover, companyCues); best != "" {
			out["company"] = best
			leftover = removeLine(leftover, best)
		}
	}

	// Address: longest line with an address cue, or a digit-and-comma line.
	if _, seen := out["address"]; !seen {
		best := longestLineWithCue(leftover, addressCues)
		if best == "" {
			for _, l := range leftover {
				if strings.Count(l, ",") >= 2 && strings.IndexFunc(l, isDigit) != -1 {
					if len(l) > len(best) {
						best = l
					}
				}
			}
		}
		if best != "" {
			out["address"] = best
			leftover = removeLine(leftover, best)
		}
	}

	if _, seen := out["services"]; !seen {
		if best := longestLineWithCue(leftover, serviceCues); best != "" {
			out["services"] = best
			leftover = removeLine(leftover, best)
		}
	}

	// Name: the first remaining line that looks like a person's name.
	if _, seen := out["name"]; !seen {
		for _, l := range leftover {
			if looksLikeName(l) {
				out["name"] = l
				break
			}
		}
	}

	return out
}

// splitLabeledLine detects "Phone: +1 555 0100" style lines, matching the
// label fuzzily against known field labels.
func splitLabeledLine(l string, metric strutil.StringMetric) (key, val string, ok bool) {
	idx := strings.IndexAny(l, ":-")
	if idx <= 0 || idx > 12 {
		return "", "", false
	}
	label := strings.ToLower(strings.TrimSpace(l[:idx]))
	if label == "" {
		return "", "", false
	}
	for spelling, field := range fieldLabels {
		if strutil.Similarity(label, spelling, metric) >= 0.85 {
			return field, strings.TrimSpace(l[idx+1:]), true
		}
	}
	return "", "", false
}

func longestLineWithCue(lines []string, cues []string) string {
	best := ""
	for _, l := range lines {
		ll := strings.ToLower(l)
		for _, cue := range cues {
			if strings.Contains(ll, cue) {
				if len(l) > len(best) {
					best = l
				}
				break
			}
		}
	}
	return best
}

func removeLine(lines []string, target string) []string {
	out := lines[:0]
	for _, l := range lines {
		if l != target {
			out = append(out, l)
		}
	}
	return out
}

// looksLikeName accepts two to four capitalized alphabetic words.
func looksLikeName(l string) bool {
	words := strings.Fields(l)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		w = strings.Trim(w, ".")
		if w == "" || w[0] < 'A' || w[0] > 'Z' {
			return false
		}
		for _, r := range w {
			if !isLetter(r) && r != '\'' && r != '-' {
				return false
			}
		}
	}
	return true
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if isDigit(r) {
			n++
		}
	}
	return n
}
