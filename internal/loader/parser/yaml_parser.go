package parser

import (
	"errors"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"climada/internal/loader/schema"
)

type YamlParser struct {
}

func NewYamlParser() *YamlParser {
	return &YamlParser{}
}

// Parse decodes every YAML document of r into one schema.Document. Impact
// functions accumulate across documents; the last tag and discount rate table
// win.
func (p *YamlParser) Parse(r io.Reader) (schema.Document, error) {
	var doc schema.Document
	seen := map[[2]string]struct{}{}
	decoder := yaml.NewDecoder(r)

	for {
		var root yaml.Node
		err := decoder.Decode(&root)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return schema.Document{}, err
		}
		if len(root.Content) == 0 {
			continue
		}

		keys, err := checkKeys("document", root.Content[0], -1)
		if err != nil {
			return schema.Document{}, err
		}

		if n, ok := keys["tag"]; ok {
			if _, err := checkKeys("tag", &n, -1); err != nil {
				return schema.Document{}, err
			}
			if err := n.Decode(&doc.Tag); err != nil {
				return schema.Document{}, err
			}
		}

		if n, ok := keys["impact_functions"]; ok {
			funcs, err := p.ParseImpactFuncs(n, seen)
			if err != nil {
				return schema.Document{}, err
			}
			doc.ImpactFuncs = append(doc.ImpactFuncs, funcs...)
		}

		if n, ok := keys["discount_rates"]; ok {
			rates, err := p.ParseDiscRates(n)
			if err != nil {
				return schema.Document{}, err
			}
			doc.DiscRates = &rates
		}
	}

	return doc, nil
}

func (p *YamlParser) ParseImpactFuncs(n yaml.Node, seen map[[2]string]struct{}) ([]schema.ImpactFunc, error) {
	var items []yaml.Node
	if err := n.Decode(&items); err != nil {
		return nil, err
	}

	funcs := make([]schema.ImpactFunc, 0, len(items))
	for i := range items {
		if _, err := checkKeys("impact_functions", &items[i], i); err != nil {
			return nil, err
		}

		var f schema.ImpactFunc
		if err := items[i].Decode(&f); err != nil {
			return nil, err
		}

		key := [2]string{f.HazType, string(f.ID)}
		if _, exists := seen[key]; exists {
			return nil, &duplicateFuncError{hazType: f.HazType, id: string(f.ID), line: items[i].Line}
		}
		seen[key] = struct{}{}
		funcs = append(funcs, f)
	}
	return funcs, nil
}

func (p *YamlParser) ParseDiscRates(n yaml.Node) (schema.DiscRates, error) {
	if _, err := checkKeys("discount_rates", &n, -1); err != nil {
		return schema.DiscRates{}, err
	}
	var rates schema.DiscRates
	if err := n.Decode(&rates); err != nil {
		return schema.DiscRates{}, err
	}
	return rates, nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
