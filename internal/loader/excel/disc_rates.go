package excel

import (
	"climada/internal/entity/discrates"
	"climada/internal/entity/tag"
)

// ReadDiscRates reads the year and discount rate columns of a workbook. The
// tag records path and description.
func ReadDiscRates(path, description string, names VarNames) (*discrates.DiscRates, error) {
	s, err := readSheet(path, names.SheetName)
	if err != nil {
		return nil, err
	}
	yearCol, err := s.index(names, ColYear)
	if err != nil {
		return nil, err
	}
	rateCol, err := s.index(names, ColDisc)
	if err != nil {
		return nil, err
	}

	d := &discrates.DiscRates{Tag: tag.New(path, description)}
	for r := range s.rows {
		if s.blank(r) {
			continue
		}
		year, err := s.integer(r, yearCol)
		if err != nil {
			return nil, err
		}
		rate, err := s.number(r, rateCol)
		if err != nil {
			return nil, err
		}
		d.Years = append(d.Years, year)
		d.Rates = append(d.Rates, rate)
	}
	return d, nil
}

// WriteDiscRates writes d to the sheet names describes, replacing that sheet
// when the workbook already exists.
func WriteDiscRates(path string, d *discrates.DiscRates, names VarNames) error {
	if err := d.Check(); err != nil {
		return err
	}
	yearCol, err := names.column(ColYear)
	if err != nil {
		return err
	}
	rateCol, err := names.column(ColDisc)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, len(d.Years))
	for i := range d.Years {
		rows[i] = []interface{}{d.Years[i], d.Rates[i]}
	}
	return writeSheet(path, names.SheetName, []interface{}{yearCol, rateCol}, rows)
}
