package schema

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v2"
)

type yamlSchema struct {
	Tables []yamlTable `yaml:"tables"`
}

type yamlTable struct {
	Name           string            `yaml:"name"`
	Properties     map[string]string `yaml:"properties,omitempty"`
	ColumnFamilies []yamlFamily      `yaml:"column_families,omitempty"`
}

type yamlFamily struct {
	Name       string            `yaml:"name"`
	Properties map[string]string `yaml:"properties,omitempty"`
}

// ParseSchema parses a YAML schema snapshot. Table and column family names
// must be non-empty and unique; unknown keys are rejected so a typo in a
// snapshot can't silently drop a property.
func ParseSchema(source []byte) (*Schema, error) {
	var raw yamlSchema
	if err := yaml.UnmarshalStrict(source, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	schema := &Schema{}
	seenTables := map[string]bool{}
	for _, t := range raw.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("table with empty name in schema")
		}
		if seenTables[t.Name] {
			return nil, fmt.Errorf("table '%s' is defined twice", t.Name)
		}
		seenTables[t.Name] = true

		table := TableDescriptor{
			Name:       t.Name,
			Properties: t.Properties,
		}
		seenFamilies := map[string]bool{}
		for _, f := range t.ColumnFamilies {
			if f.Name == "" {
				return nil, fmt.Errorf("table '%s' has a column family with an empty name", t.Name)
			}
			if seenFamilies[f.Name] {
				return nil, fmt.Errorf("table '%s' defines column family '%s' twice", t.Name, f.Name)
			}
			seenFamilies[f.Name] = true
			table.ColumnFamilies = append(table.ColumnFamilies, ColumnFamilyDescriptor{
				Name:       f.Name,
				Properties: f.Properties,
			})
		}
		schema.Tables = append(schema.Tables, table)
	}
	return schema, nil
}

// ExportSchema renders the schema back as canonical YAML: tables sorted by
// name, properties in sorted key order (yaml.v2 sorts map keys on marshal).
// Parsing the result yields an equal schema, so exports are diffable.
func ExportSchema(schema *Schema) (string, error) {
	raw := yamlSchema{}
	for _, t := range schema.Tables {
		table := yamlTable{Name: t.Name, Properties: t.Properties}
		for _, f := range t.ColumnFamilies {
			table.ColumnFamilies = append(table.ColumnFamilies, yamlFamily{
				Name:       f.Name,
				Properties: f.Properties,
			})
		}
		raw.Tables = append(raw.Tables, table)
	}
	sort.Slice(raw.Tables, func(i, j int) bool {
		return raw.Tables[i].Name < raw.Tables[j].Name
	})

	buf, err := yaml.Marshal(&raw)
	if err != nil {
		return "", fmt.Errorf("failed to export schema: %w", err)
	}
	return string(buf), nil
}
