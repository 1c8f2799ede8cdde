package loader

import (
	"errors"
	"fmt"

	"climada/internal/entity/discrates"
	"climada/internal/entity/impactfuncs"
	"climada/internal/loader/excel"
	"climada/internal/logger"
)

// ExcelLoader reads the impact function and discount rate sheets of a
// workbook. A workbook may hold either sheet or both.
type ExcelLoader struct {
	File      string
	Options   Options
	Funcs     *impactfuncs.Set
	DiscRates *discrates.DiscRates
}

func NewExcelLoader(fileName string, opts Options) *ExcelLoader {
	opts.ImpactFuncsNames = excel.DefaultImpactFuncsVarNames().Merge(opts.ImpactFuncsNames)
	opts.DiscRatesNames = excel.DefaultDiscRatesVarNames().Merge(opts.DiscRatesNames)
	return &ExcelLoader{File: fileName, Options: opts}
}

// Load reads both sheets. A missing sheet is skipped, any other error fails
// the load.
func (l *ExcelLoader) Load() error {
	log := logger.OrNop(l.Options.Logger)

	funcs, funcsErr := excel.ReadImpactFuncs(l.File, l.Options.Description, l.Options.ImpactFuncsNames, log)
	if funcsErr != nil && !errors.Is(funcsErr, excel.ErrMissingSheet) {
		return funcsErr
	}
	rates, ratesErr := excel.ReadDiscRates(l.File, l.Options.Description, l.Options.DiscRatesNames)
	if ratesErr != nil && !errors.Is(ratesErr, excel.ErrMissingSheet) {
		return ratesErr
	}
	if funcsErr != nil && ratesErr != nil {
		return fmt.Errorf("no entity sheet in %s: %w", l.File, errors.Join(funcsErr, ratesErr))
	}

	if funcsErr == nil {
		l.Funcs = funcs
	} else {
		log.Debug("skipping impact functions", logger.F("file", l.File), logger.F("reason", funcsErr))
		l.Funcs = impactfuncs.NewSet()
	}
	if ratesErr == nil {
		l.DiscRates = rates
	} else {
		log.Debug("skipping discount rates", logger.F("file", l.File), logger.F("reason", ratesErr))
	}
	return nil
}

func (l *ExcelLoader) GetImpactFuncs() *impactfuncs.Set {
	return l.Funcs
}

func (l *ExcelLoader) GetDiscRates() *discrates.DiscRates {
	return l.DiscRates
}
