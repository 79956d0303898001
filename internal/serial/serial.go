// Package serial assigns per-document serial numbers to extracted voter
// records. Grounded on ocr_extract.py's assign_serial_numbers, but
// corrected per the sort-key invariant: the source sorts each document's
// records by page_no alone, which leaves tie order across the 30 records
// of one page undefined; this package sorts by (page_no, IntraIndex) so
// serial numbers are deterministic within a page too.
package serial

import (
	"sort"

	"github.com/ashathullah/voter-shield/internal/voter"
)

// Assign groups records by DocID, sorts each group by (PageNo, IntraIndex),
// and assigns a 1-based SerialNo within the group. The returned slice is
// sorted by (DocID, SerialNo).
func Assign(records []voter.Record) []voter.Record {
	grouped := make(map[string][]voter.Record)
	order := make([]string, 0)
	for _, r := range records {
		if _, ok := grouped[r.DocID]; !ok {
			order = append(order, r.DocID)
		}
		grouped[r.DocID] = append(grouped[r.DocID], r)
	}

	final := make([]voter.Record, 0, len(records))
	for _, docID := range order {
		group := grouped[docID]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].PageNo != group[j].PageNo {
				return group[i].PageNo < group[j].PageNo
			}
			return group[i].IntraIndex < group[j].IntraIndex
		})
		for idx := range group {
			group[idx].SerialNo = idx + 1
		}
		final = append(final, group...)
	}

	sort.SliceStable(final, func(i, j int) bool {
		if final[i].DocID != final[j].DocID {
			return final[i].DocID < final[j].DocID
		}
		return final[i].SerialNo < final[j].SerialNo
	})

	return final
}
