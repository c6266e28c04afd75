package fields

import (
	"testing"
)

const drugSection = `用藥情形
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
因應措施：劑量不變
`

func TestExtractDrugsSegmentsByLabel(t *testing.T) {
	drugs := newTestExtractor().extractDrugs(drugSection)
	if len(drugs) != 2 {
		t.Fatalf("expected 2 drug blocks, got %d", len(drugs))
	}

	first := drugs[0]
	if first.Name != "普拿疼/Acetaminophen" {
		t.Fatalf("unexpected name %q", first.Name)
	}
	if first.License != "衛署藥製字第012345號" {
		t.Fatalf("unexpected license %q", first.License)
	}
	if first.Dosage != "500mg 每日三次" || first.Route != "口服" {
		t.Fatalf("unexpected dosage/route %q/%q", first.Dosage, first.Route)
	}
	if first.StartDate != "2023年4月1日" {
		t.Fatalf("unexpected start date %q", first.StartDate)
	}
	if first.Indication != "發燒" || first.Manufacturer != "測試製藥股份有限公司" {
		t.Fatalf("unexpected indication/manufacturer %q/%q", first.Indication, first.Manufacturer)
	}
	if first.Action != "停用" || first.Rechallenge != "未再投與" {
		t.Fatalf("unexpected action/rechallenge %q/%q", first.Action, first.Rechallenge)
	}
	if !first.Relation.Suspected || first.Relation.Concomitant || first.Relation.Interaction {
		t.Fatalf("unexpected relation flags %+v", first.Relation)
	}

	second := drugs[1]
	if second.Name != "阿斯匹靈/Aspirin" {
		t.Fatalf("unexpected second name %q", second.Name)
	}
	if second.Relation.Concomitant != true || second.Relation.Suspected {
		t.Fatalf("unexpected second relation flags %+v", second.Relation)
	}
	if second.Action != "劑量不變" {
		t.Fatalf("unexpected second action %q", second.Action)
	}
}

func TestDrugEndDatePrecedence(t *testing.T) {
	drugs := newTestExtractor().extractDrugs(drugSection)

	// Both end labels present: the primary end-of-use label wins.
	if drugs[0].EndDate != "2023年4月10日" {
		t.Fatalf("expected primary end date, got %q", drugs[0].EndDate)
	}
	// Only the stop label present: it is used as fallback.
	if drugs[1].EndDate != "2023/04/08" {
		t.Fatalf("expected fallback stop date, got %q", drugs[1].EndDate)
	}
}

func TestExtractDrugsAbsentSection(t *testing.T) {
	if drugs := newTestExtractor().extractDrugs("文件內沒有任何藥品表格"); drugs != nil {
		t.Fatalf("expected nil, got %v", drugs)
	}
}
