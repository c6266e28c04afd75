package domain

import "strings"

type DocumentClass string

const (
	ClassSimpleCode   DocumentClass = "simple_code"
	ClassAdverseEvent DocumentClass = "adverse_event_report"
	ClassUnsupported  DocumentClass = "unsupported"
)

// ClassifyFilename decides the extraction strategy from the filename alone.
// Content is never inspected; the function is total over any string.
func ClassifyFilename(filename string) DocumentClass {
	switch {
	case strings.HasPrefix(filename, "C"):
		return ClassSimpleCode
	case strings.HasPrefix(filename, "TW-TFDA"):
		return ClassAdverseEvent
	default:
		return ClassUnsupported
	}
}

// UploadedDocument is one file of a batch request. The bytes are owned by
// the request and not retained after it completes.
type UploadedDocument struct {
	Filename string
	Bytes    []byte
}

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

type PatientInfo struct {
	ID       string   `json:"id,omitempty"`
	Gender   Gender   `json:"gender,omitempty"`
	WeightKg *float64 `json:"weight_kg,omitempty"`
	HeightCm *float64 `json:"height_cm,omitempty"`
	Age      *int     `json:"age,omitempty"`
}

type AdverseEvent struct {
	// Date keeps the literal text of the reported date (e.g. 2023年5月1日);
	// it is never parsed or validated.
	Date        string   `json:"date,omitempty"`
	Severity    []string `json:"severity,omitempty"`
	Symptoms    []string `json:"symptoms,omitempty"`
	Description string   `json:"description,omitempty"`
	Outcome     string   `json:"outcome,omitempty"`
}

type LabResult struct {
	Date  string `json:"date"`
	Item  string `json:"item"`
	Value string `json:"value"`
}

type DrugRecord struct {
	License      string        `json:"license,omitempty"`
	Name         string        `json:"name,omitempty"`
	Route        string        `json:"route,omitempty"`
	Dosage       string        `json:"dosage,omitempty"`
	StartDate    string        `json:"start_date,omitempty"`
	EndDate      string        `json:"end_date,omitempty"`
	Indication   string        `json:"indication,omitempty"`
	Manufacturer string        `json:"manufacturer,omitempty"`
	Action       string        `json:"action,omitempty"`
	Rechallenge  string        `json:"rechallenge,omitempty"`
	Relation     RelationFlags `json:"relation_flags"`
}

type RelationFlags struct {
	Suspected   bool `json:"suspected"`
	Concomitant bool `json:"concomitant"`
	Interaction bool `json:"interaction"`
}

type MedicalHistory struct {
	Diagnoses      []string `json:"diagnoses,omitempty"`
	Allergy        string   `json:"allergy,omitempty"`
	SmokingAlcohol string   `json:"smoking_alcohol,omitempty"`
	LiverKidney    string   `json:"liver_kidney,omitempty"`
}

// AdverseEventReport is the nested record extracted from one TFDA report.
type AdverseEventReport struct {
	CaseID         string          `json:"case_id,omitempty"`
	Patient        PatientInfo     `json:"patient"`
	Event          AdverseEvent    `json:"adverse_event"`
	LabResults     []LabResult     `json:"lab_results,omitempty"`
	Drugs          []DrugRecord    `json:"drugs,omitempty"`
	MedicalHistory *MedicalHistory `json:"medical_history,omitempty"`
}

// StructuredRecord is the classifier-dependent extraction output. Exactly
// one of PartNumber/Report is meaningful for a given class; unsupported
// documents carry the class only.
type StructuredRecord struct {
	Class      DocumentClass       `json:"class"`
	PartNumber string              `json:"part_number,omitempty"`
	Report     *AdverseEventReport `json:"report,omitempty"`
}

// FileResult is the per-file outcome of a batch. A failed file carries an
// error message instead of a record; one uploaded file yields exactly one
// FileResult.
type FileResult struct {
	Filename string            `json:"filename"`
	Record   *StructuredRecord `json:"record,omitempty"`
	RawText  string            `json:"text,omitempty"`
	Error    string            `json:"error,omitempty"`
}
