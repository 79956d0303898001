// Package langroute is the single place the filename-to-language coupling
// lives (see spec §9): every other component consumes an explicit
// voter.Language parameter instead of re-deriving it from a filename.
package langroute

import (
	"strings"

	"github.com/ashathullah/voter-shield/internal/voter"
)

// Classify derives the language set for a document from a substring in its
// filename: "-TAM-" selects Tamil+English, "-ENG-" selects English-only, and
// anything else defaults to English.
func Classify(filename string) voter.Language {
	upper := strings.ToUpper(filename)
	if strings.Contains(upper, "-TAM-") {
		return voter.TamilEnglish
	}
	return voter.English
}

// CoverPageCount returns how many leading pages are cover pages for a
// language set: 2 for English, 3 for Tamil+English.
func CoverPageCount(lang voter.Language) int {
	if lang == voter.TamilEnglish {
		return 3
	}
	return 2
}

// VoterStartPage returns the 1-based page number where voter-grid pages
// begin (the page immediately after the cover pages).
func VoterStartPage(lang voter.Language) int {
	return CoverPageCount(lang) + 1
}

// TesseractLangs returns the tesseract language codes required to OCR a
// document in this language set.
func TesseractLangs(lang voter.Language) []string {
	if lang == voter.TamilEnglish {
		return []string{"tam", "eng"}
	}
	return []string{"eng"}
}
