// Package extract implements the Extractor stage (spec §4.5): splitting
// stacked OCR text back into individual voter-cell records on the
// end-of-record marker, parsing page headers and per-cell fields, and
// flagging low-split pages as integrity warnings.
package extract

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ashathullah/voter-shield/internal/crop"
	"github.com/ashathullah/voter-shield/internal/voter"
)

// MinExpectedSplits is the default integrity threshold (spec §4.5): pages
// producing fewer cell chunks than this are reported as a low-split
// integrity warning rather than failing the document. The driver reads
// the tunable value from config.OCRConfig.MinExpectedSplits instead of
// this constant; config.DefaultConfig mirrors this value as its default.
const MinExpectedSplits = 25

// SplitResult holds the cell chunks from one stacked page's OCR text,
// plus whether the split met the expected count.
type SplitResult struct {
	Chunks    []string
	LowSplit  bool
}

// SplitCells splits stacked OCR text into per-cell chunks on lines
// containing the literal marker token (spec §4.5 item 1). minSplits is
// the integrity threshold below which LowSplit is set.
func SplitCells(stackedText string, minSplits int) SplitResult {
	lines := strings.Split(stackedText, "\n")

	var chunks []string
	var current []string
	for _, ln := range lines {
		if strings.Contains(strings.ToUpper(ln), crop.MarkerToken) {
			chunks = append(chunks, strings.TrimSpace(strings.Join(current, "\n")))
			current = nil
			continue
		}
		current = append(current, ln)
	}
	if len(strings.TrimSpace(strings.Join(current, "\n"))) > 0 {
		chunks = append(chunks, strings.TrimSpace(strings.Join(current, "\n")))
	}

	nonEmpty := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c != "" {
			nonEmpty = append(nonEmpty, c)
		}
	}

	return SplitResult{Chunks: nonEmpty, LowSplit: len(nonEmpty) < minSplits}
}

// ParseCell extracts one voter record's fields from a single cell chunk's
// OCR text, per spec §4.5 item 2.
func ParseCell(cellText string, lang voter.Language) voter.Record {
	var rec voter.Record

	// Tesseract's Tamil output mixes precomposed and decomposed vowel-sign
	// sequences for the same visual glyph; normalize to NFC so the label
	// regexes below match consistently regardless of which form tesseract
	// happened to emit.
	cellText = norm.NFC.String(cellText)

	if m := epicIDRe.FindString(cellText); m != "" {
		rec.EPICID = m
	}

	lines := strings.Split(cellText, "\n")
	for _, ln := range lines {
		assignNameField(&rec, ln, lang)
		assignScalarField(&rec, ln, lang)
	}

	return rec
}

// assignNameField tries each relation-specific label before the generic
// "Name" label, so a line like "Father's Name: X" is never also captured
// as the voter's own name.
func assignNameField(rec *voter.Record, line string, lang voter.Language) {
	tamil := lang == voter.TamilEnglish

	switch {
	case tryCapture(fatherNameRe, line, &rec.FatherName):
	case tamil && tryCapture(tamilFatherNameRe, line, &rec.FatherName):
	case tryCapture(motherNameRe, line, &rec.MotherName):
	case tamil && tryCapture(tamilMotherNameRe, line, &rec.MotherName):
	case tryCapture(husbandNameRe, line, &rec.HusbandName):
	case tamil && tryCapture(tamilHusbandNameRe, line, &rec.HusbandName):
	case tryCapture(otherNameRe, line, &rec.OtherName):
	case tamil && tryCapture(tamilOtherNameRe, line, &rec.OtherName):
	case rec.Name == "" && tryCapture(nameRe, line, &rec.Name):
	case rec.Name == "" && tamil && tryCapture(tamilNameRe, line, &rec.Name):
	}
}

func assignScalarField(rec *voter.Record, line string, lang voter.Language) {
	if rec.HouseNo == "" {
		if tryCapture(houseNoRe, line, &rec.HouseNo) {
			return
		}
		if lang == voter.TamilEnglish && tryCapture(tamilHouseNoRe, line, &rec.HouseNo) {
			return
		}
	}
	if rec.Age == nil {
		if age, ok := captureAge(ageRe, line); ok {
			rec.Age = &age
			return
		}
		if lang == voter.TamilEnglish {
			if age, ok := captureAge(tamilAgeRe, line); ok {
				rec.Age = &age
				return
			}
		}
	}
	if rec.Gender == "" {
		var raw string
		if tryCapture(genderRe, line, &raw) {
			rec.Gender = normalizeGender(raw)
			return
		}
		if lang == voter.TamilEnglish && tryCapture(tamilGenderRe, line, &raw) {
			rec.Gender = normalizeGender(raw)
			return
		}
	}
}

func tryCapture(re interface{ FindStringSubmatch(string) []string }, line string, dst *string) bool {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	*dst = strings.TrimSpace(m[1])
	return true
}

func captureAge(re interface{ FindStringSubmatch(string) []string }, line string) (int, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > 120 {
		return 0, false
	}
	return n, true
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
