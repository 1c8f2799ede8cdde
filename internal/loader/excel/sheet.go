package excel

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// sheet is the header-indexed content of one worksheet.
type sheet struct {
	name   string
	header map[string]int
	rows   [][]string
	// first data row number in the workbook (1-based)
	offset int
}

func readSheet(path, name string) (*sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	var notExist excelize.ErrSheetNotExist
	if errors.As(err, &notExist) {
		return nil, fmt.Errorf("%w: %q in %s", ErrMissingSheet, name, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", name, path, err)
	}

	s := &sheet{name: name, header: map[string]int{}, offset: 2}
	if len(rows) == 0 {
		return s, nil
	}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if _, dup := s.header[h]; h != "" && !dup {
			s.header[h] = i
		}
	}
	s.rows = rows[1:]
	return s, nil
}

// index resolves the column of a logical key.
func (s *sheet) index(names VarNames, key string) (int, error) {
	col, err := names.column(key)
	if err != nil {
		return 0, err
	}
	i, ok := s.header[col]
	if !ok {
		return 0, &MissingColumnError{Sheet: s.name, Key: key, Column: col}
	}
	return i, nil
}

func (s *sheet) blank(r int) bool {
	for _, v := range s.rows[r] {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (s *sheet) text(r, c int) string {
	if c < len(s.rows[r]) {
		return strings.TrimSpace(s.rows[r][c])
	}
	return ""
}

func (s *sheet) number(r, c int) (float64, error) {
	v := s.text(r, c)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, s.cellError(r, c, v, err)
	}
	return f, nil
}

func (s *sheet) integer(r, c int) (int, error) {
	f, err := s.number(r, c)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, s.cellError(r, c, s.text(r, c), fmt.Errorf("not an integer"))
	}
	return int(f), nil
}

// id returns the cell text, with integral numbers written without decimals.
func (s *sheet) id(r, c int) string {
	v := s.text(r, c)
	if f, err := strconv.ParseFloat(v, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(f), 10)
	}
	return v
}

func (s *sheet) cellError(r, c int, v string, reason error) error {
	cell, err := excelize.CoordinatesToCellName(c+1, r+s.offset)
	if err != nil {
		cell = fmt.Sprintf("R%dC%d", r+s.offset, c+1)
	}
	return &InvalidCellError{Sheet: s.name, Cell: cell, Value: v, Reason: reason}
}

// writeSheet replaces sheet name of the workbook at path, creating the
// workbook when it does not exist yet, with header and rows.
func writeSheet(path, name string, header []interface{}, rows [][]interface{}) error {
	f, err := excelize.OpenFile(path)
	fresh := false
	if errors.Is(err, fs.ErrNotExist) {
		f, fresh = excelize.NewFile(), true
	} else if err != nil {
		return fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	// DeleteSheet keeps the last sheet of a workbook, the target is rebuilt
	// in a scratch sheet first.
	const scratch = "_climada_scratch"
	if _, err := f.NewSheet(scratch); err != nil {
		return err
	}
	stale := []string{name}
	if fresh && name != defaultSheet {
		stale = append(stale, defaultSheet)
	}
	for _, old := range stale {
		idx, err := f.GetSheetIndex(old)
		if err != nil {
			return err
		}
		if idx < 0 {
			continue
		}
		if err := f.DeleteSheet(old); err != nil {
			return err
		}
	}
	if err := f.SetSheetName(scratch, name); err != nil {
		return err
	}

	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}

	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	return f.SaveAs(path)
}
