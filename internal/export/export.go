// Package export writes a hotel snapshot to an .xlsx workbook, one sheet per store.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/roach88/hotelite/internal/domain"
	"github.com/roach88/hotelite/internal/entity"
)

// sheet is one worksheet: a header row followed by data rows.
type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]any
}

// Sheet names in workbook order.
const (
	SheetRooms         = "Rooms"
	SheetHousekeepers  = "Housekeepers"
	SheetAssignments   = "Assignments"
	SheetItems         = "Items"
	SheetPerformances  = "Performances"
	SheetSatisfactions = "Satisfactions"
	SheetEvents        = "Events"
)

func sheets(s entity.Snapshot) []sheet {
	rooms := sheet{name: SheetRooms, headers: []string{"Room", "Category", "Level", "Occupancy"}, widths: []float64{10, 12, 8, 12}}
	for _, r := range s.Rooms {
		rooms.rows = append(rooms.rows, []any{r.ID, string(r.Category), r.Level, string(r.Occupancy)})
	}

	staff := sheet{name: SheetHousekeepers, headers: []string{"Name", "Age", "Availability"}, widths: []float64{24, 8, 30}}
	for _, hk := range s.Housekeepers {
		days := make([]string, len(hk.Availability))
		for i, d := range hk.Availability {
			days[i] = string(d)
		}
		staff.rows = append(staff.rows, []any{hk.Name, hk.Age, strings.Join(days, " ")})
	}

	assignments := sheet{name: SheetAssignments, headers: []string{"Room", "Housekeeper"}, widths: []float64{10, 24}}
	for _, a := range s.Assignments {
		assignments.rows = append(assignments.rows, []any{a.RoomID, a.Housekeeper})
	}

	items := sheet{name: SheetItems, headers: []string{"Item", "Pax"}, widths: []float64{30, 8}}
	for _, i := range s.Items {
		items.rows = append(items.rows, []any{i.Name, i.Pax})
	}

	ratings := sheet{name: SheetPerformances, headers: []string{"Housekeeper", "Rating"}, widths: []float64{24, 8}}
	for _, p := range s.Performances {
		ratings.rows = append(ratings.rows, []any{p.Housekeeper, p.Rating})
	}

	scores := sheet{name: SheetSatisfactions, headers: []string{"Customer", "Value"}, widths: []float64{24, 8}}
	for _, sc := range s.Satisfactions {
		scores.rows = append(scores.rows, []any{sc.Customer, sc.Value})
	}

	events := sheet{name: SheetEvents, headers: []string{"#", "Description", "Date"}, widths: []float64{6, 40, 12}}
	for i, e := range s.Events {
		events.rows = append(events.rows, []any{i + 1, e.Description, e.Date.Format(domain.DateLayout)})
	}

	return []sheet{rooms, staff, assignments, items, ratings, scores, events}
}

// Workbook builds the workbook for s. The caller closes the returned file.
func Workbook(s entity.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for _, sh := range sheets(s) {
		if err := writeSheet(f, sh, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", sh.name, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(SheetRooms)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("activate %s: %w", SheetRooms, err)
	}
	f.SetActiveSheet(idx)
	return f, nil
}

func writeSheet(f *excelize.File, sh sheet, headerStyle int) error {
	if _, err := f.NewSheet(sh.name); err != nil {
		return fmt.Errorf("create: %w", err)
	}

	header := make([]any, len(sh.headers))
	for i, h := range sh.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sh.name, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(sh.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sh.name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, w := range sh.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sh.name, col, col, w); err != nil {
			return fmt.Errorf("set width of %s: %w", col, err)
		}
	}

	for i, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return nil
}

// Bytes renders s as .xlsx bytes.
func Bytes(s entity.Snapshot) ([]byte, error) {
	f, err := Workbook(s)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile saves s as an .xlsx workbook at path.
func WriteFile(s entity.Snapshot, path string) error {
	f, err := Workbook(s)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}
