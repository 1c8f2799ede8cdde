package parser

import "gopkg.in/yaml.v3"

type FieldType struct {
	Required bool
}

var (
	DocumentFields = map[string]FieldType{
		"tag":              {Required: false},
		"impact_functions": {Required: false},
		"discount_rates":   {Required: false},
	}
	TagFields = map[string]FieldType{
		"file_name":   {Required: false},
		"description": {Required: false},
	}
	ImpactFuncFields = map[string]FieldType{
		"haz_type":       {Required: true},
		"id":             {Required: true},
		"name":           {Required: false},
		"intensity_unit": {Required: false},
		"intensity":      {Required: true},
		"mdd":            {Required: true},
		"paa":            {Required: true},
	}
	DiscRatesFields = map[string]FieldType{
		"years": {Required: true},
		"rates": {Required: true},
	}
)

var EntityFields = map[string]map[string]FieldType{
	"document":         DocumentFields,
	"tag":              TagFields,
	"impact_functions": ImpactFuncFields,
	"discount_rates":   DiscRatesFields,
}

func isValidKey(key string, section string) error {
	if _, ok := EntityFields[section][key]; !ok {
		return ErrUnknownField
	}
	return nil
}

// checkMissingRequiredKey returns the first required key of section absent
// from node, in sorted order so errors are stable.
func checkMissingRequiredKey(section string, node map[string]yaml.Node) string {
	for _, key := range sortedKeys(EntityFields[section]) {
		if EntityFields[section][key].Required {
			if _, ok := node[key]; !ok {
				return key
			}
		}
	}
	return ""
}

// checkKeys validates the keys of a mapping node of section.
func checkKeys(section string, n *yaml.Node, item int) (map[string]yaml.Node, error) {
	var keys map[string]yaml.Node
	if err := n.Decode(&keys); err != nil {
		return nil, err
	}
	if key := checkMissingRequiredKey(section, keys); key != "" {
		return nil, &requiredFieldError{section: section, field: key, item: item, line: n.Line}
	}
	for _, k := range sortedKeys(keys) {
		if err := isValidKey(k, section); err != nil {
			v := keys[k]
			return nil, &invalidFieldError{section: section, field: k, line: v.Line, reason: err}
		}
	}
	return keys, nil
}
