package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"climada/internal/entity/discrates"
	"climada/internal/entity/impactfuncs"
	"climada/internal/loader/excel"
	"climada/internal/loader/loader"
	"climada/internal/logger"
)

var errUsage = errors.New("usage")

type options struct {
	configFile  string
	description string
	fileType    string
	outDir      string
	hazType     string
	funcID      string
	from, to    int
	values      string
	files       []string
}

var commands = map[string]func(context.Context, *app, options) error{
	"check":   checkCmd,
	"plot":    plotCmd,
	"npv":     npvCmd,
	"convert": convertCmd,
}

func parseFlags(name string, args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configFile, "config", "", "YAML config file")
	fs.StringVar(&o.description, "desc", "", "description recorded in the entity tag")
	fs.StringVar(&o.fileType, "type", "", "input type: yaml or excel (default: by extension)")

	switch name {
	case "plot":
		fs.StringVar(&o.outDir, "out", "", "output directory (default: plot.output_dir)")
		fs.StringVar(&o.hazType, "haz", "", "only this hazard type")
		fs.StringVar(&o.funcID, "id", "", "only this impact function id")
	case "npv":
		fs.IntVar(&o.from, "from", 0, "first year")
		fs.IntVar(&o.to, "to", 0, "last year")
		fs.StringVar(&o.values, "values", "", "comma separated value per year")
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	o.files = fs.Args()

	want := 1
	if name == "convert" {
		want = 2
	}
	if len(o.files) < want || (name == "convert" && len(o.files) != want) {
		fmt.Fprintf(stderr, "%s: expected %d file argument(s), got %d\n", name, want, len(o.files))
		return options{}, errUsage
	}
	return o, nil
}

func (a *app) load(ctx context.Context, path string, o options) (loader.Loader, error) {
	l := loader.NewLoader(o.fileType, path, loader.Options{
		Description:      o.description,
		ImpactFuncsNames: a.cfg.ImpactFuncs,
		DiscRatesNames:   a.cfg.DiscRates,
		Logger:           logger.FromContext(ctx),
	})
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l, nil
}

func checkCmd(ctx context.Context, a *app, o options) error {
	for _, path := range o.files {
		l, err := a.load(ctx, path, o)
		if err != nil {
			return err
		}
		log := logger.FromContext(ctx).With(logger.F("file", path))

		set := l.GetImpactFuncs()
		if err := set.Check(log); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		rates := l.GetDiscRates()
		if rates != nil {
			if err := rates.Check(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}

		nRates := 0
		if rates != nil {
			nRates = len(rates.Years)
		}
		fmt.Fprintf(a.stdout, "%s: ok (%d impact functions, %d discount rates)\n", path, set.Size("", ""), nRates)
	}
	return nil
}

func plotCmd(ctx context.Context, a *app, o options) error {
	outDir := o.outDir
	if outDir == "" {
		outDir = a.cfg.Plot.OutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	width, height := a.cfg.Plot.Size()

	for _, path := range o.files {
		l, err := a.load(ctx, path, o)
		if err != nil {
			return err
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		for _, f := range l.GetImpactFuncs().Funcs(o.hazType, o.funcID) {
			chart, err := f.Plot(nil)
			if err != nil {
				return fmt.Errorf("%s %s %s: %w", path, f.HazType, f.ID, err)
			}
			out := filepath.Join(outDir, fmt.Sprintf("%s_%s_%s.png", base, f.HazType, f.ID))
			if err := chart.Save(out, width, height); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, out)
		}

		if rates := l.GetDiscRates(); rates != nil && o.hazType == "" && o.funcID == "" {
			chart, err := rates.Plot(nil)
			if err != nil {
				return fmt.Errorf("%s discount rates: %w", path, err)
			}
			out := filepath.Join(outDir, base+"_discount_rates.png")
			if err := chart.Save(out, width, height); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, out)
		}
	}
	return nil
}

func npvCmd(ctx context.Context, a *app, o options) error {
	values, err := parseValues(o.values)
	if err != nil {
		return err
	}
	l, err := a.load(ctx, o.files[0], o)
	if err != nil {
		return err
	}
	rates := l.GetDiscRates()
	if rates == nil {
		return fmt.Errorf("%s: %w", o.files[0], discrates.ErrNoRates)
	}
	npv, err := rates.NetPresentValue(o.from, o.to, values)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%g\n", npv)
	return nil
}

func parseValues(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("no values given")
	}
	parts := strings.Split(s, ",")
	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}

func convertCmd(ctx context.Context, a *app, o options) error {
	in, out := o.files[0], o.files[1]
	l, err := a.load(ctx, in, o)
	if err != nil {
		return err
	}
	set, rates := l.GetImpactFuncs(), l.GetDiscRates()

	switch loader.TypeFromExt(out) {
	case "excel":
		err = writeExcel(out, set, rates, a)
	default:
		err = writeYamlFile(out, set, rates)
	}
	if err != nil {
		return err
	}

	inInfo, err := os.Stat(in)
	if err != nil {
		return err
	}
	outInfo, err := os.Stat(out)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "converted %s (%d bytes) to %s (%d bytes)\n", in, inInfo.Size(), out, outInfo.Size())
	return nil
}

func writeExcel(path string, set *impactfuncs.Set, rates *discrates.DiscRates, a *app) error {
	if set != nil && set.Size("", "") > 0 {
		if err := excel.WriteImpactFuncs(path, set, a.cfg.ImpactFuncs); err != nil {
			return err
		}
	}
	if rates != nil {
		if err := excel.WriteDiscRates(path, rates, a.cfg.DiscRates); err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("nothing to write to %s", path)
	}
	return nil
}

func writeYamlFile(path string, set *impactfuncs.Set, rates *discrates.DiscRates) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := loader.WriteYaml(f, set, rates); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
