package plangen

import (
	"regexp"
	"strconv"
	"strings"
)

// SectionKind tags a plan-document section variant.
type SectionKind string

const (
	SectionDay   SectionKind = "day"
	SectionWeek  SectionKind = "week"
	SectionMonth SectionKind = "month"
)

// PlanSection is one tagged section of a long-form plan document.
type PlanSection struct {
	Kind     SectionKind
	Index    int
	Title    string
	RawTasks []string
}

// PlanDocument is a parsed plan, built once and queried by index instead of
// re-scanning the raw text per lookup.
type PlanDocument struct {
	Sections []PlanSection

	byDay   map[int]int
	byWeek  map[int]int
	byMonth map[int]int
}

var (
	sectionHeadingRe = regexp.MustCompile(`(?i)^\s*(?:#+\s*|\*\*\s*)?(day|week|month)\s+(\d+)\b[:.\s]*(.*?)(?:\*\*)?\s*$`)
	taskLineRe       = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+?)\s*$`)
)

// ParsePlanDocument scans a free-text plan (markdown-ish) into tagged
// sections. Bulleted and numbered lines under a "Day N" / "Week N" /
// "Month N" heading become that section's raw tasks; everything else is
// ignored.
func ParsePlanDocument(text string) *PlanDocument {
	doc := &PlanDocument{
		byDay:   make(map[int]int),
		byWeek:  make(map[int]int),
		byMonth: make(map[int]int),
	}

	var current *PlanSection
	for _, line := range strings.Split(text, "\n") {
		if m := sectionHeadingRe.FindStringSubmatch(line); m != nil {
			index, err := strconv.Atoi(m[2])
			if err != nil || index < 1 {
				continue
			}
			doc.Sections = append(doc.Sections, PlanSection{
				Kind:  SectionKind(strings.ToLower(m[1])),
				Index: index,
				Title: strings.TrimSpace(m[3]),
			})
			current = &doc.Sections[len(doc.Sections)-1]
			continue
		}
		if current == nil {
			continue
		}
		if m := taskLineRe.FindStringSubmatch(line); m != nil {
			current.RawTasks = append(current.RawTasks, m[1])
		}
	}

	// 只记第一次出现的 section（first-seen-wins，和去重策略一致）
	for i, section := range doc.Sections {
		switch section.Kind {
		case SectionDay:
			if _, ok := doc.byDay[section.Index]; !ok {
				doc.byDay[section.Index] = i
			}
		case SectionWeek:
			if _, ok := doc.byWeek[section.Index]; !ok {
				doc.byWeek[section.Index] = i
			}
		case SectionMonth:
			if _, ok := doc.byMonth[section.Index]; !ok {
				doc.byMonth[section.Index] = i
			}
		}
	}
	return doc
}

func (d *PlanDocument) Day(n int) (PlanSection, bool)   { return d.lookup(d.byDay, n) }
func (d *PlanDocument) Week(n int) (PlanSection, bool)  { return d.lookup(d.byWeek, n) }
func (d *PlanDocument) Month(n int) (PlanSection, bool) { return d.lookup(d.byMonth, n) }

func (d *PlanDocument) lookup(index map[int]int, n int) (PlanSection, bool) {
	i, ok := index[n]
	if !ok {
		return PlanSection{}, false
	}
	return d.Sections[i], true
}
