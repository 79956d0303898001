// Package quality annotates extracted voter records with per-record
// completeness flags, grounded directly on quality_flags.py's
// flag_record/add_quality_flags (spec §4.7).
package quality

import (
	"strconv"
	"strings"

	"github.com/ashathullah/voter-shield/internal/voter"
)

// Annotate sets TotalFlags, FlagReasons, and Explanation1 on every record
// in place, checking exactly the five fields the source checks: epic_id,
// name, house_no, age, gender. Name fields such as father/mother/husband
// name are deliberately NOT checked, matching the source.
func Annotate(records []voter.Record) {
	for i := range records {
		annotateOne(&records[i])
	}
}

func annotateOne(r *voter.Record) {
	var reasons []string

	if missing(r.EPICID) {
		reasons = append(reasons, "missing_epic_id")
	}
	if missing(r.Name) {
		reasons = append(reasons, "missing_name")
	}
	if missing(r.HouseNo) {
		reasons = append(reasons, "missing_house_no")
	}
	if r.Age == nil {
		reasons = append(reasons, "missing_age")
	}
	if missing(r.Gender) {
		reasons = append(reasons, "missing_gender")
	}

	r.TotalFlags = len(reasons)
	r.FlagReasons = strings.Join(reasons, ";")

	if len(reasons) == 0 {
		r.Explanation1 = ""
		return
	}

	stripped := make([]string, len(reasons))
	for i, reason := range reasons {
		stripped[i] = strings.TrimPrefix(reason, "missing_")
	}
	r.Explanation1 = "Missing: " + strings.Join(stripped, ", ")
}

func missing(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FormatTotalFlags renders TotalFlags the way the writer emits it in CSV:
// as a plain decimal string.
func FormatTotalFlags(n int) string {
	return strconv.Itoa(n)
}
