// Package summary extracts Summary Totals (Male/Female/Third Gender/Total)
// from the OCR text of a document's final page, grounded directly on
// summary_extract.py's regex-based best-effort parser, including its
// Tamil "மொத்தம்" synonym for Total (spec §4.6).
package summary

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ashathullah/voter-shield/internal/voter"
)

const tamilTotal = "மொத்தம்"

var (
	spaceCollapseRe = regexp.MustCompile(`[ \t]+`)
	maleRe          = regexp.MustCompile(`(?i)\bMale\b[^0-9]{0,20}(\d{1,7})`)
	femaleRe        = regexp.MustCompile(`(?i)\bFemale\b[^0-9]{0,20}(\d{1,7})`)
	thirdGenderRe   = regexp.MustCompile(`(?i)\bThird\s*Gender\b[^0-9]{0,20}(\d{1,7})`)
	totalRe         = regexp.MustCompile(`(?i)\bTotal\b[^0-9]{0,30}(\d{1,7})`)
	tamilTotalRe    = regexp.MustCompile(regexp.QuoteMeta(tamilTotal) + `[^0-9]{0,30}(\d{1,7})`)
)

// Parse extracts totals from the summary page's OCR text. Any field that
// cannot be matched is left nil, matching the source's best-effort
// semantics rather than failing the whole document.
func Parse(ocrText string) voter.SummaryTotals {
	var out voter.SummaryTotals
	if ocrText == "" {
		return out
	}

	text := strings.ReplaceAll(ocrText, "\r", "\n")
	text = spaceCollapseRe.ReplaceAllString(text, " ")

	out.TotalMale = firstInt(maleRe, text)
	out.TotalFemale = firstInt(femaleRe, text)
	out.TotalThirdGender = firstInt(thirdGenderRe, text)

	total := firstInt(totalRe, text)
	if total == nil && strings.Contains(text, tamilTotal) {
		total = firstInt(tamilTotalRe, text)
	}
	out.TotalVotersExpected = total

	return out
}

func firstInt(re *regexp.Regexp, text string) *int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}
