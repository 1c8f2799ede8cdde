package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"climada/internal/entity/discrates"
	"climada/internal/entity/impactfuncs"
	"climada/internal/entity/tag"
	"climada/internal/loader/parser"
	"climada/internal/loader/schema"
	"climada/internal/logger"
)

type YamlLoader struct {
	File      string
	Options   Options
	Funcs     *impactfuncs.Set
	DiscRates *discrates.DiscRates
}

func NewYamlLoader(fileName string, opts Options) *YamlLoader {
	return &YamlLoader{File: fileName, Options: opts}
}

// Load parses the file. The tag of the entities records the file name and,
// when the file carries none, the configured description.
func (l *YamlLoader) Load() error {
	file, err := os.Open(l.File)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	doc, err := parser.NewParser().Parse(bufio.NewReaderSize(file, 64*1024))
	if err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			for _, msg := range typeErr.Errors {
				if strings.HasPrefix(msg, "line") {
					return fmt.Errorf("invalid entity file %s: %s", l.File, msg)
				}
			}
		}
		return fmt.Errorf("invalid entity file %s: %w", l.File, err)
	}

	t := tag.New(l.File, doc.Tag.Description)
	if t.Description == "" {
		t.Description = l.Options.Description
	}

	log := logger.OrNop(l.Options.Logger)
	l.Funcs = impactfuncs.NewSet()
	l.Funcs.Tag = t
	for _, f := range doc.ImpactFuncs {
		l.Funcs.Append(f.Entity(), log)
	}
	if doc.DiscRates != nil {
		l.DiscRates = doc.DiscRates.Entity(t)
	}

	log.Debug("loaded entity file",
		logger.F("file", l.File),
		logger.F("impact_funcs", l.Funcs.Size("", "")),
		logger.F("disc_rates", l.DiscRates != nil))
	return nil
}

func (l *YamlLoader) GetImpactFuncs() *impactfuncs.Set {
	return l.Funcs
}

func (l *YamlLoader) GetDiscRates() *discrates.DiscRates {
	return l.DiscRates
}

// WriteYaml encodes set and rates, either of which may be nil, as one
// entity document.
func WriteYaml(w io.Writer, set *impactfuncs.Set, rates *discrates.DiscRates) error {
	var doc schema.Document
	if set != nil {
		doc.Tag = set.Tag
		for _, f := range set.Funcs("", "") {
			doc.ImpactFuncs = append(doc.ImpactFuncs, schema.FromImpactFunc(f))
		}
	}
	if rates != nil {
		if set == nil {
			doc.Tag = rates.Tag
		}
		doc.DiscRates = schema.FromDiscRates(rates)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}
