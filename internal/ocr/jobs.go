package ocr

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ashathullah/voter-shield/internal/langroute"
	"github.com/ashathullah/voter-shield/internal/voter"
)

// Job is one tesseract invocation: read imagePath, write the recognized
// text to outputPath, using the named language and psm/oem flags.
type Job struct {
	ImagePath  string
	OutputPath string
	Lang       string // tesseract -l value, e.g. "eng" or "tam+eng"
	PSMFlags   []string
}

var (
	stackedSuffix = "_stacked_crops.jpg"
	streetPNGRe   = regexp.MustCompile(`(?i)_street\.(png|jpg)$`)
)

// EnumerateJobs builds the OCR job list for one document's rendered pages
// and crops, in the fixed order the source enumerates them: stacked voter
// crops, then street/header crops, then cover pages, then the summary page
// (spec §4.4).
func EnumerateJobs(crops []string, street []string, covers []string, summary string, ocrDir string) []Job {
	var jobs []Job

	stacked := filterSuffix(crops, stackedSuffix)
	sort.Strings(stacked)
	for _, p := range stacked {
		outName := strings.Replace(filepath.Base(p), stackedSuffix, "_stacked_ocr.txt", 1)
		jobs = append(jobs, Job{
			ImagePath:  p,
			OutputPath: filepath.Join(ocrDir, outName),
			Lang:       tessLang(langroute.Classify(filepath.Base(p))),
			PSMFlags:   []string{"--psm", "6", "--oem", "1"},
		})
	}

	streetSorted := append([]string(nil), street...)
	sort.Strings(streetSorted)
	for _, p := range streetSorted {
		outName := streetPNGRe.ReplaceAllString(filepath.Base(p), "_street.txt")
		jobs = append(jobs, Job{
			ImagePath:  p,
			OutputPath: filepath.Join(ocrDir, outName),
			Lang:       tessLang(langroute.Classify(filepath.Base(p))),
			PSMFlags:   []string{"--psm", "6"},
		})
	}

	coverSorted := append([]string(nil), covers...)
	sort.Strings(coverSorted)
	for _, p := range coverSorted {
		outName := strings.TrimSuffix(filepath.Base(p), ".jpg") + "_ocr.txt"
		jobs = append(jobs, Job{
			ImagePath:  p,
			OutputPath: filepath.Join(ocrDir, outName),
			Lang:       tessLang(langroute.Classify(filepath.Base(p))),
			PSMFlags:   []string{"--psm", "6", "--oem", "1"},
		})
	}

	if summary != "" {
		outName := strings.TrimSuffix(filepath.Base(summary), ".jpg") + "_ocr.txt"
		jobs = append(jobs, Job{
			ImagePath:  summary,
			OutputPath: filepath.Join(ocrDir, outName),
			Lang:       tessLang(langroute.Classify(filepath.Base(summary))),
			PSMFlags:   []string{"--psm", "6", "--oem", "1"},
		})
	}

	return jobs
}

func tessLang(lang voter.Language) string {
	return strings.Join(langroute.TesseractLangs(lang), "+")
}

func filterSuffix(paths []string, suffix string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.HasSuffix(p, suffix) {
			out = append(out, p)
		}
	}
	return out
}

// StackedFilenameInfo is the parsed form of a "<doc>_page_<NN>_stacked_ocr.txt" name.
type StackedFilenameInfo struct {
	DocID  string
	PageNo int
}

var stackedFilenameRe = regexp.MustCompile(`(?i)^(.+?)_page_(\d+)_stacked_ocr\.txt$`)

// ParseStackedFilename extracts the document id and page number from a
// stacked-OCR output filename (spec §4.4's FILENAME_RE).
func ParseStackedFilename(name string) (StackedFilenameInfo, bool) {
	m := stackedFilenameRe.FindStringSubmatch(name)
	if m == nil {
		return StackedFilenameInfo{}, false
	}
	var pageNo int
	if _, err := fmt.Sscanf(m[2], "%d", &pageNo); err != nil {
		return StackedFilenameInfo{}, false
	}
	return StackedFilenameInfo{DocID: m[1], PageNo: pageNo}, true
}
