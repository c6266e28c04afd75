package fields

import (
	"regexp"
	"strings"

	"github.com/linyucheng/docextract/internal/core/domain"
)

// drugBlockLabel delimits drug blocks: each block starts at an occurrence of
// the trade-name/generic-name label and runs to the next occurrence or the
// end of text. Blocks never nest.
const drugBlockLabel = "商品名/學名"

var (
	drugNamePattern         = regexp.MustCompile(regexp.QuoteMeta(drugBlockLabel) + `\s*[:：]?\s*([^\n]+)`)
	drugLicensePattern      = regexp.MustCompile(`許可證字號\s*[:：]?\s*(\S+)`)
	drugDosagePattern       = regexp.MustCompile(`用法用量\s*[:：]?\s*([^\n]+)`)
	drugRoutePattern        = regexp.MustCompile(`給藥途徑\s*[:：]?\s*([^\n]+)`)
	drugIndicationPattern   = regexp.MustCompile(`用藥原因\s*[:：]?\s*([^\n]+)`)
	drugManufacturerPattern = regexp.MustCompile(`製造廠商\s*[:：]?\s*([^\n]+)`)

	drugDate         = `\d{1,4}年\d{1,2}月\d{1,2}日|\d{4}[/.-]\d{1,2}[/.-]\d{1,2}`
	drugStartPattern = regexp.MustCompile(`用藥開始日期\s*[:：]?\s*(` + drugDate + `)`)
	// The form carries two end-of-use labels; 用藥結束日期 wins and 停藥日期
	// is consulted only when the primary label is absent.
	drugEndPattern     = regexp.MustCompile(`用藥結束日期\s*[:：]?\s*(` + drugDate + `)`)
	drugStoppedPattern = regexp.MustCompile(`停藥日期\s*[:：]?\s*(` + drugDate + `)`)
)

const (
	markerSuspected   = "疑似藥品"
	markerConcomitant = "併用藥品"
	markerInteraction = "交互作用"
)

func (e *Extractor) extractDrugs(text string) []domain.DrugRecord {
	blocks := splitDrugBlocks(text)
	if len(blocks) == 0 {
		return nil
	}
	drugs := make([]domain.DrugRecord, 0, len(blocks))
	for _, block := range blocks {
		drugs = append(drugs, e.extractDrug(block))
	}
	return drugs
}

func splitDrugBlocks(text string) []string {
	var starts []int
	for offset := 0; ; {
		idx := strings.Index(text[offset:], drugBlockLabel)
		if idx < 0 {
			break
		}
		starts = append(starts, offset+idx)
		offset += idx + len(drugBlockLabel)
	}
	if len(starts) == 0 {
		return nil
	}

	blocks := make([]string, 0, len(starts))
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		blocks = append(blocks, text[start:end])
	}
	return blocks
}

func (e *Extractor) extractDrug(block string) domain.DrugRecord {
	endDate := matchGroup(drugEndPattern, block)
	if endDate == "" {
		endDate = matchGroup(drugStoppedPattern, block)
	}

	return domain.DrugRecord{
		License:      matchGroup(drugLicensePattern, block),
		Name:         matchGroup(drugNamePattern, block),
		Route:        matchGroup(drugRoutePattern, block),
		Dosage:       matchGroup(drugDosagePattern, block),
		StartDate:    matchGroup(drugStartPattern, block),
		EndDate:      endDate,
		Indication:   matchGroup(drugIndicationPattern, block),
		Manufacturer: matchGroup(drugManufacturerPattern, block),
		Action:       matchGroup(e.actionPattern, block),
		Rechallenge:  matchGroup(e.rechallengePattern, block),
		Relation: domain.RelationFlags{
			Suspected:   strings.Contains(block, markerSuspected),
			Concomitant: strings.Contains(block, markerConcomitant),
			Interaction: strings.Contains(block, markerInteraction),
		},
	}
}
