package loader

import (
	"path/filepath"
	"strings"

	"climada/internal/entity/discrates"
	"climada/internal/entity/impactfuncs"
	"climada/internal/loader/excel"
	"climada/internal/logger"
)

// Loader reads the entities stored in one file.
type Loader interface {
	Load() error
	GetImpactFuncs() *impactfuncs.Set
	GetDiscRates() *discrates.DiscRates
}

// Options configures the loaders. Zero values fall back to the defaults.
type Options struct {
	Description      string
	ImpactFuncsNames excel.VarNames
	DiscRatesNames   excel.VarNames
	Logger           logger.Logger
}

// NewLoader returns the loader for loaderType ("yaml" or "excel"). An empty
// type is guessed from the file extension.
func NewLoader(loaderType string, filename string, opts Options) Loader {
	if loaderType == "" {
		loaderType = TypeFromExt(filename)
	}

	switch loaderType {
	case "excel":
		return NewExcelLoader(filename, opts)
	default:
		return NewYamlLoader(filename, opts)
	}
}

func TypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xls":
		return "excel"
	default:
		return "yaml"
	}
}
