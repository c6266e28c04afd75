package fields

import (
	"regexp"
	"strings"

	"github.com/linyucheng/docextract/internal/core/domain"
)

const (
	historyHeader = "相關病史"

	defaultAllergy     = "無"
	defaultLifestyle   = "不明"
	defaultLiverKidney = "不明"
)

// The history block ends at the reason-for-medication marker. Some report
// layouts interleave that marker into the drug table instead, so the
// medication-status section header terminates the block as well.
var historyEndMarkers = []string{"用藥原因", "用藥情形"}

var (
	allergyPattern     = regexp.MustCompile(`過敏史\s*[:：]?\s*([^\n]+)`)
	lifestylePattern   = regexp.MustCompile(`菸酒史\s*[:：]?\s*([^\n]+)`)
	liverKidneyPattern = regexp.MustCompile(`肝腎功能\s*[:：]?\s*([^\n]+)`)
)

// extractMedicalHistory reads the block between the history header and the
// reason-for-medication marker. The pointer is nil when the section is
// absent; inside a present section every field is optional with "none" or
// "unknown" defaults.
func extractMedicalHistory(text string) *domain.MedicalHistory {
	start := strings.Index(text, historyHeader)
	if start < 0 {
		return nil
	}
	block := text[start+len(historyHeader):]
	end := len(block)
	for _, marker := range historyEndMarkers {
		if idx := strings.Index(block, marker); idx >= 0 && idx < end {
			end = idx
		}
	}
	block = block[:end]
	block = strings.TrimLeft(block, ":： \t\n")

	history := &domain.MedicalHistory{
		Diagnoses:      extractDiagnoses(block),
		Allergy:        defaultAllergy,
		SmokingAlcohol: defaultLifestyle,
		LiverKidney:    defaultLiverKidney,
	}
	if v := matchGroup(allergyPattern, block); v != "" {
		history.Allergy = v
	}
	if v := matchGroup(lifestylePattern, block); v != "" {
		history.SmokingAlcohol = v
	}
	if v := matchGroup(liverKidneyPattern, block); v != "" {
		history.LiverKidney = v
	}
	return history
}

// extractDiagnoses treats every line of the history block that is not one of
// the labeled fields as diagnosis text, splitting enumerations on the usual
// CJK separators.
func extractDiagnoses(block string) []string {
	var diagnoses []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isHistoryLabelLine(line) {
			continue
		}
		for _, part := range listSeparator.Split(line, -1) {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				diagnoses = append(diagnoses, trimmed)
			}
		}
	}
	return diagnoses
}

func isHistoryLabelLine(line string) bool {
	for _, label := range []string{"過敏史", "菸酒史", "肝腎功能"} {
		if strings.HasPrefix(line, label) {
			return true
		}
	}
	return false
}
