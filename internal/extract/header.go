package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ashathullah/voter-shield/internal/voter"
)

var (
	assemblyRe = regexp.MustCompile(`(?i)Name\s*:\s*([A-Za-z0-9\- ]+?)\s+Part`)
	partNoRe   = regexp.MustCompile(`(?i)Part\s*No\.?\s*[:\-]?\s*(\d+)`)
	streetRe   = regexp.MustCompile(`(?i)Section\s+No\s+and\s+Name\s*[:\-]?\s*(.+)$`)

	tamilAssemblyRe = regexp.MustCompile(`தொகுதி\s*[:\-]?\s*([^,\n]+)`)
	tamilPartNoRe   = regexp.MustCompile(`பகுதி\s*(?:எண்|நம்பர்)\.?\s*[:\-]?\s*(\d+)`)
	tamilStreetRe   = regexp.MustCompile(`(?:பிரிவு|தெரு)\s*(?:எண்|பெயர்)?\s*[:\-]?\s*(.+)$`)
)

// ParsePageHeader parses the top-of-page header strip's OCR text into
// assembly/part_no/street, per ocr_extract.py's parse_page_metadata. Only
// the first two non-blank lines are consulted, matching the source.
func ParsePageHeader(ocrText string, lang voter.Language) voter.PageHeader {
	var header voter.PageHeader
	if strings.TrimSpace(ocrText) == "" {
		return header
	}

	var lines []string
	for _, ln := range strings.Split(ocrText, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) < 2 {
		return header
	}
	line1, line2 := lines[0], lines[1]

	if lang == voter.TamilEnglish {
		return parseTamilHeader(line1, line2)
	}

	if m := assemblyRe.FindStringSubmatch(line1); m != nil {
		header.Assembly = strings.TrimSpace(m[1])
	}
	if m := partNoRe.FindStringSubmatch(line1); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			header.PartNo = &n
		}
	}
	if m := streetRe.FindStringSubmatch(line2); m != nil {
		header.Street = strings.TrimSpace(m[1])
	}
	return header
}

func parseTamilHeader(line1, line2 string) voter.PageHeader {
	var header voter.PageHeader

	if m := tamilAssemblyRe.FindStringSubmatch(line1); m != nil {
		header.Assembly = strings.TrimSpace(m[1])
	} else if m := assemblyRe.FindStringSubmatch(line1); m != nil {
		header.Assembly = strings.TrimSpace(m[1])
	}

	if m := tamilPartNoRe.FindStringSubmatch(line1); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			header.PartNo = &n
		}
	} else if m := partNoRe.FindStringSubmatch(line1); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			header.PartNo = &n
		}
	}

	if m := tamilStreetRe.FindStringSubmatch(line2); m != nil {
		header.Street = strings.TrimSpace(m[1])
	} else if m := streetRe.FindStringSubmatch(line2); m != nil {
		header.Street = strings.TrimSpace(m[1])
	}

	return header
}
