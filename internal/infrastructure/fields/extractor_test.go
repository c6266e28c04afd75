package fields

import (
	"reflect"
	"testing"

	"github.com/linyucheng/docextract/internal/core/domain"
)

func testVocabulary() Vocabulary {
	return Vocabulary{
		Severity:    []string{"死亡", "危及生命", "導致病人住院", "延長病人住院時間", "造成永久性殘疾", "先天性畸形", "非嚴重"},
		Outcome:     []string{"痊癒", "恢復中", "尚未恢復", "恢復但有後遺症", "死亡", "不明"},
		Action:      []string{"停用", "減量", "增量", "劑量不變", "不明"},
		Rechallenge: []string{"是", "否", "未再投與", "不明"},
	}
}

func newTestExtractor() *Extractor {
	return NewExtractor(testVocabulary())
}

const sampleReport = `通報案件編號 TW-TFDA-2023001234
病歷號碼：A123456
性別：女 年齡 45 歲
身高：162.5公分 體重：60.5kg
發生日期：2023年4月15日
危及生命 導致病人住院
不良反應症狀：皮疹、呼吸困難
不良反應敘述：病人服藥後兩小時出現全身性皮疹並伴隨呼吸困難，急診入院治療。
相關檢查
2023/04/15 WBC = 12.3
2023/04/16 CRP = 8.5mg/dL
2023/04/17 ALT = 55U/L
不良反應後果：恢復中
相關病史
高血壓、第二型糖尿病
過敏史：盤尼西林
菸酒史：無
用藥情形
商品名/學名：普拿疼/Acetaminophen
藥品類別：疑似藥品
許可證字號：衛署藥製字第012345號
用法用量：500mg 每日三次
給藥途徑：口服
用藥開始日期：2023年4月1日
用藥結束日期：2023年4月10日
停藥日期：2023年4月12日
用藥原因：發燒
製造廠商：測試製藥股份有限公司
因應措施：停用
再投與結果：未再投與
商品名/學名：阿斯匹靈/Aspirin
藥品類別：併用藥品
停藥日期：2023/04/08
`

func TestExtractAdverseEventReport(t *testing.T) {
	record := newTestExtractor().Extract(domain.ClassAdverseEvent, sampleReport)
	if record.Class != domain.ClassAdverseEvent || record.Report == nil {
		t.Fatalf("expected adverse event record, got %+v", record)
	}
	report := record.Report

	if report.CaseID != "TW-TFDA-2023001234" {
		t.Fatalf("unexpected case id %q", report.CaseID)
	}

	if report.Patient.ID != "A123456" {
		t.Fatalf("unexpected patient id %q", report.Patient.ID)
	}
	if report.Patient.Gender != domain.GenderFemale {
		t.Fatalf("unexpected gender %q", report.Patient.Gender)
	}
	if report.Patient.Age == nil || *report.Patient.Age != 45 {
		t.Fatalf("unexpected age %v", report.Patient.Age)
	}
	if report.Patient.WeightKg == nil || *report.Patient.WeightKg != 60.5 {
		t.Fatalf("unexpected weight %v", report.Patient.WeightKg)
	}
	if report.Patient.HeightCm == nil || *report.Patient.HeightCm != 162.5 {
		t.Fatalf("unexpected height %v", report.Patient.HeightCm)
	}

	if report.Event.Date != "2023年4月15日" {
		t.Fatalf("unexpected event date %q", report.Event.Date)
	}
	wantSeverity := []string{"危及生命", "導致病人住院"}
	if !reflect.DeepEqual(report.Event.Severity, wantSeverity) {
		t.Fatalf("unexpected severity %v", report.Event.Severity)
	}
	wantSymptoms := []string{"皮疹", "呼吸困難"}
	if !reflect.DeepEqual(report.Event.Symptoms, wantSymptoms) {
		t.Fatalf("unexpected symptoms %v", report.Event.Symptoms)
	}
	if report.Event.Description != "病人服藥後兩小時出現全身性皮疹並伴隨呼吸困難，急診入院治療。" {
		t.Fatalf("unexpected description %q", report.Event.Description)
	}
	if report.Event.Outcome != "恢復中" {
		t.Fatalf("unexpected outcome %q", report.Event.Outcome)
	}

	if len(report.LabResults) != 3 {
		t.Fatalf("expected 3 lab results, got %v", report.LabResults)
	}
	if len(report.Drugs) != 2 {
		t.Fatalf("expected 2 drug blocks, got %d", len(report.Drugs))
	}
	if report.MedicalHistory == nil {
		t.Fatalf("expected medical history section")
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	e := newTestExtractor()
	first := e.Extract(domain.ClassAdverseEvent, sampleReport)
	second := e.Extract(domain.ClassAdverseEvent, sampleReport)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestExtractUnsupportedIsPlaceholder(t *testing.T) {
	record := newTestExtractor().Extract(domain.ClassUnsupported, "whatever text")
	if record.Class != domain.ClassUnsupported || record.Report != nil || record.PartNumber != "" {
		t.Fatalf("expected bare placeholder record, got %+v", record)
	}
}

func TestExtractMissingPatternsYieldAbsentFields(t *testing.T) {
	record := newTestExtractor().Extract(domain.ClassAdverseEvent, "沒有任何可辨識欄位的文字")
	report := record.Report
	if report == nil {
		t.Fatalf("expected empty report, got nil")
	}
	if report.CaseID != "" || report.Patient.ID != "" || report.Patient.Age != nil {
		t.Fatalf("expected absent fields, got %+v", report)
	}
	if len(report.Event.Severity) != 0 || report.Event.Outcome != "" {
		t.Fatalf("expected absent event fields, got %+v", report.Event)
	}
	if report.LabResults != nil || report.Drugs != nil || report.MedicalHistory != nil {
		t.Fatalf("expected absent collections, got %+v", report)
	}
}
