package fields

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/linyucheng/docextract/internal/core/domain"
)

var (
	caseIDPattern = regexp.MustCompile(`TW-TFDA-\d+`)

	patientIDPattern = regexp.MustCompile(`病歷號碼\s*[:：]?\s*([A-Za-z0-9-]+)`)
	genderPattern    = regexp.MustCompile(`性別\s*[:：]?\s*(男|女)`)
	weightPattern    = regexp.MustCompile(`體重\s*[:：]?\s*(\d+(?:\.\d+)?)\s*(?:公斤|[Kk][Gg])`)
	heightPattern    = regexp.MustCompile(`身高\s*[:：]?\s*(\d+(?:\.\d+)?)\s*(?:公分|[Cc][Mm])`)
	agePattern       = regexp.MustCompile(`(\d+)\s*歲`)

	eventDatePattern = regexp.MustCompile(`發生日期\s*[:：]?\s*(\d{1,4}年\d{1,2}月\d{1,2}日)`)
	symptomsPattern  = regexp.MustCompile(`不良反應症狀\s*[:：]?\s*([^\n]+)`)
	listSeparator    = regexp.MustCompile(`[、,，;；]`)

	descriptionLabel = "不良反應敘述"

	// Known section markers that terminate a free-text description.
	sectionMarkers = []string{"相關檢查", "用藥情形", "相關病史", "不良反應後果", "不良反應症狀", "通報者"}
)

func extractCaseID(text string) string {
	return caseIDPattern.FindString(text)
}

func extractPatient(text string) domain.PatientInfo {
	patient := domain.PatientInfo{
		ID:     matchGroup(patientIDPattern, text),
		Gender: parseGender(matchGroup(genderPattern, text)),
	}
	if v, ok := parseFloatField(weightPattern, text); ok {
		patient.WeightKg = &v
	}
	if v, ok := parseFloatField(heightPattern, text); ok {
		patient.HeightCm = &v
	}
	if raw := matchGroup(agePattern, text); raw != "" {
		if age, err := strconv.Atoi(raw); err == nil {
			patient.Age = &age
		}
	}
	return patient
}

func (e *Extractor) extractEvent(text string) domain.AdverseEvent {
	return domain.AdverseEvent{
		Date:        matchGroup(eventDatePattern, text),
		Severity:    e.extractSeverity(text),
		Symptoms:    extractSymptoms(text),
		Description: extractDescription(text),
		Outcome:     matchGroup(e.outcomePattern, text),
	}
}

// extractSeverity is a membership test per vocabulary entry, not a single
// capture: one report may claim several severity flags. Output keeps the
// vocabulary order with duplicates removed.
func (e *Extractor) extractSeverity(text string) []string {
	found := lo.Filter(lo.Uniq(e.vocab.Severity), func(label string, _ int) bool {
		return strings.Contains(text, label)
	})
	if len(found) == 0 {
		return nil
	}
	return found
}

func extractSymptoms(text string) []string {
	raw := matchGroup(symptomsPattern, text)
	if raw == "" {
		return nil
	}
	parts := listSeparator.Split(raw, -1)
	symptoms := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			symptoms = append(symptoms, trimmed)
		}
	}
	if len(symptoms) == 0 {
		return nil
	}
	return symptoms
}

// extractDescription captures the text between the description label and the
// closest following known section marker.
func extractDescription(text string) string {
	start := strings.Index(text, descriptionLabel)
	if start < 0 {
		return ""
	}
	rest := text[start+len(descriptionLabel):]
	rest = strings.TrimLeft(rest, ":： \t\n")

	end := len(rest)
	for _, marker := range sectionMarkers {
		if idx := strings.Index(rest, marker); idx >= 0 && idx < end {
			end = idx
		}
	}
	return strings.TrimSpace(rest[:end])
}

func parseGender(raw string) domain.Gender {
	switch raw {
	case "男":
		return domain.GenderMale
	case "女":
		return domain.GenderFemale
	case "":
		return ""
	default:
		return domain.GenderUnknown
	}
}

func parseFloatField(pattern *regexp.Regexp, text string) (float64, bool) {
	raw := matchGroup(pattern, text)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
