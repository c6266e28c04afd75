// Package report renders finished extraction batches as downloadable
// workbooks.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/linyucheng/docextract/internal/core/domain"
)

const (
	sheetCases       = "Cases"
	sheetLabResults  = "Lab Results"
	sheetDrugs       = "Drugs"
	sheetPartNumbers = "Part Numbers"
	sheetErrors      = "Errors"
)

// XLSXWriter renders a batch as an XLSX workbook with one sheet per record
// family. Every sheet is always present so downstream tooling can address
// them by name regardless of batch content.
type XLSXWriter struct{}

func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

func (x *XLSXWriter) Write(w io.Writer, results []domain.FileResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetCases); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, sheet := range []string{sheetLabResults, sheetDrugs, sheetPartNumbers, sheetErrors} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("new sheet %s: %w", sheet, err)
		}
	}

	sheets := map[string]*sheetWriter{
		sheetCases:       newSheetWriter(f, sheetCases, "Filename", "Case ID", "Patient ID", "Gender", "Age", "Weight (kg)", "Height (cm)", "Event Date", "Severity", "Symptoms", "Description", "Outcome", "Allergy", "Smoking/Alcohol", "Liver/Kidney"),
		sheetLabResults:  newSheetWriter(f, sheetLabResults, "Filename", "Case ID", "Date", "Item", "Value"),
		sheetDrugs:       newSheetWriter(f, sheetDrugs, "Filename", "Case ID", "Name", "License", "Route", "Dosage", "Start Date", "End Date", "Indication", "Manufacturer", "Action", "Rechallenge", "Relation"),
		sheetPartNumbers: newSheetWriter(f, sheetPartNumbers, "Filename", "Part Number"),
		sheetErrors:      newSheetWriter(f, sheetErrors, "Filename", "Error"),
	}
	for _, sw := range sheets {
		if sw.err != nil {
			return sw.err
		}
	}

	for _, result := range results {
		if result.Error != "" {
			sheets[sheetErrors].appendRow(result.Filename, result.Error)
			continue
		}
		if result.Record == nil {
			continue
		}
		switch result.Record.Class {
		case domain.ClassSimpleCode:
			sheets[sheetPartNumbers].appendRow(result.Filename, result.Record.PartNumber)
		case domain.ClassAdverseEvent:
			if result.Record.Report != nil {
				appendReportRows(sheets, result.Filename, result.Record.Report)
			}
		}
	}

	for _, sw := range sheets {
		if sw.err != nil {
			return sw.err
		}
	}

	index, err := f.GetSheetIndex(sheetCases)
	if err != nil {
		return fmt.Errorf("sheet index: %w", err)
	}
	f.SetActiveSheet(index)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func appendReportRows(sheets map[string]*sheetWriter, filename string, report *domain.AdverseEventReport) {
	sheets[sheetCases].appendRow(
		filename,
		report.CaseID,
		report.Patient.ID,
		string(report.Patient.Gender),
		optionalInt(report.Patient.Age),
		optionalFloat(report.Patient.WeightKg),
		optionalFloat(report.Patient.HeightCm),
		report.Event.Date,
		strings.Join(report.Event.Severity, "、"),
		strings.Join(report.Event.Symptoms, "、"),
		report.Event.Description,
		report.Event.Outcome,
		historyField(report.MedicalHistory, func(h *domain.MedicalHistory) string { return h.Allergy }),
		historyField(report.MedicalHistory, func(h *domain.MedicalHistory) string { return h.SmokingAlcohol }),
		historyField(report.MedicalHistory, func(h *domain.MedicalHistory) string { return h.LiverKidney }),
	)
	for _, lab := range report.LabResults {
		sheets[sheetLabResults].appendRow(filename, report.CaseID, lab.Date, lab.Item, lab.Value)
	}
	for _, drug := range report.Drugs {
		sheets[sheetDrugs].appendRow(
			filename,
			report.CaseID,
			drug.Name,
			drug.License,
			drug.Route,
			drug.Dosage,
			drug.StartDate,
			drug.EndDate,
			drug.Indication,
			drug.Manufacturer,
			drug.Action,
			drug.Rechallenge,
			relationLabel(drug.Relation),
		)
	}
}

func relationLabel(flags domain.RelationFlags) string {
	labels := lo.Compact([]string{
		lo.Ternary(flags.Suspected, "suspected", ""),
		lo.Ternary(flags.Concomitant, "concomitant", ""),
		lo.Ternary(flags.Interaction, "interaction", ""),
	})
	return strings.Join(labels, ", ")
}

func historyField(history *domain.MedicalHistory, get func(*domain.MedicalHistory) string) string {
	if history == nil {
		return ""
	}
	return get(history)
}

func optionalInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func optionalFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

// sheetWriter appends rows to one sheet, remembering the first error so call
// sites can write unconditionally and check once.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func newSheetWriter(f *excelize.File, sheet string, headers ...string) *sheetWriter {
	sw := &sheetWriter{f: f, sheet: sheet, row: 1}
	sw.appendRow(lo.ToAnySlice(headers)...)
	return sw
}

func (sw *sheetWriter) appendRow(values ...any) {
	if sw.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, sw.row)
	if err != nil {
		sw.err = err
		return
	}
	if err := sw.f.SetSheetRow(sw.sheet, cell, &values); err != nil {
		sw.err = fmt.Errorf("set row %s!%s: %w", sw.sheet, cell, err)
		return
	}
	sw.row++
}
