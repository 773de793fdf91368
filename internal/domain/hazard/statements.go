// Package hazard holds the pure domain rules for SDS hazard data: statement
// code normalization and the confidence policy deciding when an automated
// extraction may overwrite verified data.
package hazard

import (
	"regexp"
	"sort"
	"strings"
)

// ConfidenceThreshold is the minimum parser confidence required before an
// automated extraction may overwrite existing hazard fields. At or below the
// threshold the prior values are kept.
const ConfidenceThreshold = 0.7

// Extraction is what the SDS parser got out of a document.
type Extraction struct {
	HazardStatements        string
	PrecautionaryStatements string
	SignalWord              string
	Confidence              float64 // 0.0 .. 1.0
}

// Trusted reports whether the extraction is confident enough to persist.
func (e Extraction) Trusted() bool {
	return e.Confidence > ConfidenceThreshold
}

// Normalize returns a copy of the extraction with both statement lists run
// through NormalizeCodes. The signal word is left as extracted.
func (e Extraction) Normalize() Extraction {
	e.HazardStatements = NormalizeCodes(e.HazardStatements)
	e.PrecautionaryStatements = NormalizeCodes(e.PrecautionaryStatements)
	return e
}

// codeRe matches GHS hazard/precautionary codes: H225, P210, EUH014, and
// same-letter combinations like H300+H310 or P301+P310.
var codeRe = regexp.MustCompile(`^(?:EUH[0-9]{3}|H[0-9]{3}(?:\+H[0-9]{3})*|P[0-9]{3}(?:\+P[0-9]{3})*)$`)

// NormalizeCodes splits a comma/space separated list of H/P codes, drops
// anything that isn't a recognizable code, dedups and sorts. Free text that
// contains no codes at all is returned trimmed as-is (some SDSs spell the
// statements out instead of listing codes).
func NormalizeCodes(raw string) string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t'
	})
	seen := make(map[string]bool)
	var codes []string
	for _, f := range fields {
		code := strings.ToUpper(strings.TrimSpace(f))
		if codeRe.MatchString(code) && !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return strings.TrimSpace(raw)
	}
	sort.Strings(codes)
	return strings.Join(codes, ", ")
}
