package fields

import (
	"regexp"

	"github.com/linyucheng/docextract/internal/core/domain"
)

// One lab observation per `<date> <item> = <value>` triple. The item is an
// alphanumeric token; the value keeps any trailing unit suffix (13.5g/dL).
var labResultPattern = regexp.MustCompile(`(\d{4}[/.-]\d{1,2}[/.-]\d{1,2})\s+([A-Za-z][A-Za-z0-9]*)\s*=\s*([^\s,，;；]+)`)

func extractLabResults(text string) []domain.LabResult {
	matches := labResultPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	results := make([]domain.LabResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, domain.LabResult{
			Date:  m[1],
			Item:  m[2],
			Value: m[3],
		})
	}
	return results
}
