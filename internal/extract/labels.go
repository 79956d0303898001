package extract

import (
	"regexp"
	"strings"
)

// Field-label regexes resolve spec.md's §9 Open Question ("the precise
// label regexes in Tamil vs. English are referenced but not specified
// here"): a concrete table of English and Tamil label patterns, each
// matched against one line of a cell's OCR text in priority order so
// more specific relation-name labels are consumed before the generic
// "Name" label. Implementers coming after us should treat this table,
// not the original Python, as authoritative.
var (
	epicIDRe = regexp.MustCompile(`[A-Z]{2,4}\d{6,8}`)

	fatherNameRe = regexp.MustCompile(`(?i)Father'?s?\s*Name\s*[:\-]?\s*(.+)`)
	motherNameRe = regexp.MustCompile(`(?i)Mother'?s?\s*Name\s*[:\-]?\s*(.+)`)
	husbandNameRe = regexp.MustCompile(`(?i)Husband'?s?\s*Name\s*[:\-]?\s*(.+)`)
	otherNameRe  = regexp.MustCompile(`(?i)(?:Other'?s?|Relative'?s?)\s*Name\s*[:\-]?\s*(.+)`)
	nameRe       = regexp.MustCompile(`(?i)^\s*Name\s*[:\-]?\s*(.+)`)

	houseNoRe = regexp.MustCompile(`(?i)House\s*No\.?\s*[:\-]?\s*(.+)`)
	ageRe     = regexp.MustCompile(`(?i)Age\s*[:\-]?\s*(\d{1,3})`)
	genderRe  = regexp.MustCompile(`(?i)(?:Sex|Gender)\s*[:\-]?\s*([A-Za-z]+)`)

	// Tamil variants. Voter rolls shot with the TamilEnglish language pack
	// mix Tamil labels with Latin-script values (EPIC IDs, ages), so the
	// English regexes above still apply to those lines; these patterns
	// additionally recognize the Tamil label tokens.
	tamilFatherNameRe  = regexp.MustCompile(`தந்தையின்\s*பெயர்\s*[:\-]?\s*(.+)`)
	tamilMotherNameRe  = regexp.MustCompile(`தாயின்\s*பெயர்\s*[:\-]?\s*(.+)`)
	tamilHusbandNameRe = regexp.MustCompile(`கணவர்(?:ின்)?\s*பெயர்\s*[:\-]?\s*(.+)`)
	tamilOtherNameRe   = regexp.MustCompile(`(?:பிற|உறவினர்)\s*பெயர்\s*[:\-]?\s*(.+)`)
	tamilNameRe        = regexp.MustCompile(`^\s*பெயர்\s*[:\-]?\s*(.+)`)
	tamilHouseNoRe     = regexp.MustCompile(`வீட்டு\s*(?:எண்|நံ)\.?\s*[:\-]?\s*(.+)`)
	tamilAgeRe         = regexp.MustCompile(`வயது\s*[:\-]?\s*(\d{1,3})`)
	tamilGenderRe      = regexp.MustCompile(`பாலினம்\s*[:\-]?\s*(\S+)`)
)

// normalizeGender maps a raw label value to one of male/female/third-gender,
// or returns it lowercased if unrecognized (spec §4.5 item 5).
func normalizeGender(raw string) string {
	switch {
	case matchesAny(raw, "male", "m", "ஆண்"):
		return "male"
	case matchesAny(raw, "female", "f", "பெண்"):
		return "female"
	case matchesAny(raw, "third gender", "thirdgender", "t", "மற்றவர்"):
		return "third-gender"
	default:
		return strings.ToLower(raw)
	}
}

func matchesAny(raw string, candidates ...string) bool {
	for _, c := range candidates {
		if equalFoldTrim(raw, c) {
			return true
		}
	}
	return false
}
