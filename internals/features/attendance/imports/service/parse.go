package service

import (
	"regexp"
	"strings"
)

var (
	dateRe       = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)
	trailMarksRe = regexp.MustCompile(`[△▲■●◆★☆※＊*]+$`)
	workerLineRe = regexp.MustCompile(`^(.*?)[（(](.*?)[）)]$`)
)

// ParseDate accepts 2006/1/2 and 2006-01-02 style cells and returns the
// canonical YYYY-MM-DD form, "" when the cell holds no date.
func ParseDate(value string) string {
	m := dateRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return ""
	}
	month, day := m[2], m[3]
	if len(month) == 1 {
		month = "0" + month
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return m[1] + "-" + month + "-" + day
}

// WorkerLine is one "name（contractor）" line from an attendance cell.
// Contractor is empty when the line had no parenthesized part.
type WorkerLine struct {
	Name       string
	Contractor string
}

// ParseWorkerLine strips the hand-written trailing marks some sheets
// carry (△, ※, * and friends) and splits name from the parenthesized
// contractor label. Returns nil for blank lines.
func ParseWorkerLine(line string) *WorkerLine {
	trimmed := strings.TrimSpace(trailMarksRe.ReplaceAllString(strings.TrimSpace(line), ""))
	if trimmed == "" {
		return nil
	}
	m := workerLineRe.FindStringSubmatch(trimmed)
	if m == nil {
		return &WorkerLine{Name: trimmed}
	}
	return &WorkerLine{
		Name:       strings.TrimSpace(m[1]),
		Contractor: strings.TrimSpace(m[2]),
	}
}

// SplitCellLines splits a multi-line cell into trimmed non-empty lines.
func SplitCellLines(cell string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(cell, "\r\n", "\n"), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
