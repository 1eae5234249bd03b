package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kadro-api/internal/domain"
	"github.com/kadro-api/internal/orgchart"
)

const (
	listSheet = "Kadro"
	treeSheet = "Teşkilat Şeması"
)

var listHeaders = []any{"Sıra", "Birim", "Pozisyon", "Görev Yeri", "Durum", "Asıl Unvan", "Personel", "Sicil No", "Başlama Tarihi"}

var treeHeaders = []any{"Seviye", "Pozisyon", "Birim", "Görev Yeri", "Personel"}

// writePositionWorkbook выгружает упорядоченный список и схему в книгу XLSX
func writePositionWorkbook(w io.Writer, rows []orgchart.PositionRow, tree []orgchart.FlatNode) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", listSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(treeSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	dateFmt := "dd.mm.yyyy"
	date, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return err
	}

	if err := writeHeader(f, listSheet, listHeaders, bold); err != nil {
		return err
	}
	for i, row := range rows {
		p := row.Position
		values := []any{
			i + 1, p.Department, p.Name, p.DutyLocation, string(p.Status),
			deref(p.OriginalTitle), holderName(row.Holder), holderRegistry(row.Holder), startDate(p),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(listSheet, cell, &values); err != nil {
			return err
		}
	}
	if len(rows) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(listHeaders), len(rows)+1)
		if err := f.SetCellStyle(listSheet, "I2", last, date); err != nil {
			return err
		}
	}
	if err := setColWidths(f, listSheet, map[string]float64{"B:C": 35, "D:G": 22, "I:I": 14}); err != nil {
		return err
	}

	if err := writeHeader(f, treeSheet, treeHeaders, bold); err != nil {
		return err
	}
	for i, n := range tree {
		values := []any{
			n.Depth + 1,
			strings.Repeat("    ", n.Depth) + n.Position.Name,
			n.Position.Department, n.Position.DutyLocation, holderName(n.Holder),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(treeSheet, cell, &values); err != nil {
			return err
		}
	}
	if err := setColWidths(f, treeSheet, map[string]float64{"B:C": 40, "D:E": 25}); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []any, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setColWidths(f *excelize.File, sheet string, widths map[string]float64) error {
	for cols, width := range widths {
		from, to, _ := strings.Cut(cols, ":")
		if err := f.SetColWidth(sheet, from, to, width); err != nil {
			return fmt.Errorf("failed to set column width %s!%s: %w", sheet, cols, err)
		}
	}
	return nil
}

func holderName(p *domain.Personnel) string {
	if p == nil {
		return ""
	}
	return p.FullName()
}

func holderRegistry(p *domain.Personnel) string {
	if p == nil {
		return ""
	}
	return p.RegistryNumber
}

// startDate отдаёт дату ячейкой-датой; формат задаёт стиль колонки
func startDate(p domain.Position) any {
	if p.StartDate == nil {
		return nil
	}
	return *p.StartDate
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
