// Package fields derives structured records from loosely formatted OCR/PDF
// text. Every matcher is independent and optional: a pattern that does not
// match produces an absent field, never an error, so extraction over the
// same text is always idempotent.
package fields

import (
	"regexp"
	"sort"
	"strings"

	"github.com/linyucheng/docextract/internal/core/domain"
)

// Vocabulary holds the closed label sets used by membership matchers. The
// sets follow the TFDA reporting form but are injected as configuration
// because real documents occasionally carry variant wording.
type Vocabulary struct {
	Severity    []string
	Outcome     []string
	Action      []string
	Rechallenge []string
}

type Extractor struct {
	vocab Vocabulary

	outcomePattern     *regexp.Regexp
	actionPattern      *regexp.Regexp
	rechallengePattern *regexp.Regexp
}

func NewExtractor(vocab Vocabulary) *Extractor {
	return &Extractor{
		vocab:              vocab,
		outcomePattern:     labeledVocabPattern("不良反應後果", vocab.Outcome),
		actionPattern:      labeledVocabPattern("因應措施", vocab.Action),
		rechallengePattern: labeledVocabPattern("再投與結果", vocab.Rechallenge),
	}
}

func (e *Extractor) Extract(class domain.DocumentClass, text string) domain.StructuredRecord {
	switch class {
	case domain.ClassSimpleCode:
		return domain.StructuredRecord{
			Class:      class,
			PartNumber: extractPartNumber(text),
		}
	case domain.ClassAdverseEvent:
		report := e.extractReport(text)
		return domain.StructuredRecord{
			Class:  class,
			Report: &report,
		}
	default:
		return domain.StructuredRecord{Class: class}
	}
}

func (e *Extractor) extractReport(text string) domain.AdverseEventReport {
	return domain.AdverseEventReport{
		CaseID:         extractCaseID(text),
		Patient:        extractPatient(text),
		Event:          e.extractEvent(text),
		LabResults:     extractLabResults(text),
		Drugs:          e.extractDrugs(text),
		MedicalHistory: extractMedicalHistory(text),
	}
}

// labeledVocabPattern matches a label followed by exactly one vocabulary
// entry. Longer entries are tried first so that no entry shadows another it
// is a prefix of.
func labeledVocabPattern(label string, vocab []string) *regexp.Regexp {
	entries := make([]string, len(vocab))
	copy(entries, vocab)
	sort.SliceStable(entries, func(i, j int) bool {
		return len([]rune(entries[i])) > len([]rune(entries[j]))
	})
	for i, entry := range entries {
		entries[i] = regexp.QuoteMeta(entry)
	}
	return regexp.MustCompile(regexp.QuoteMeta(label) + `\s*[:：]?\s*(` + strings.Join(entries, "|") + `)`)
}

func matchGroup(pattern *regexp.Regexp, text string) string {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
