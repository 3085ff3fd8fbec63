package schema

import (
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/hbasedef/hbasedef/util"
)

// DiffSchemas computes one SchemaChange per table named in either snapshot.
// Tables missing from current become CREATE, tables missing from desired
// become DROP, differing tables become ALTER, and identical tables become
// IGNORE so the script's summary still lists them. The result is sorted by
// table name; the scripter preserves whatever order it receives, so this
// sort is what makes generated scripts deterministic end to end.
func DiffSchemas(current, desired *Schema) []SchemaChange {
	names := map[string]bool{}
	for _, t := range current.Tables {
		names[t.Name] = true
	}
	for _, t := range desired.Tables {
		names[t.Name] = true
	}

	var changes []SchemaChange
	for name := range util.CanonicalMapIter(names) {
		oldTable := current.findTable(name)
		newTable := desired.findTable(name)
		switch {
		case oldTable == nil:
			changes = append(changes, SchemaChange{
				TableName: name,
				Type:      ChangeCreate,
				NewTable:  newTable,
			})
		case newTable == nil:
			changes = append(changes, SchemaChange{
				TableName: name,
				Type:      ChangeDrop,
				OldTable:  oldTable,
			})
		default:
			propertyChanges := diffTables(oldTable, newTable)
			if len(propertyChanges) == 0 {
				changes = append(changes, SchemaChange{
					TableName: name,
					Type:      ChangeIgnore,
				})
			} else {
				changes = append(changes, SchemaChange{
					TableName:       name,
					Type:            ChangeAlter,
					OldTable:        oldTable,
					NewTable:        newTable,
					PropertyChanges: propertyChanges,
				})
			}
		}
	}
	return changes
}

func diffTables(oldTable, newTable *TableDescriptor) []PropertyChange {
	object := fmt.Sprintf("table '%s'", oldTable.Name)
	changes := diffProperties(object, oldTable.Properties, newTable.Properties)

	oldFamilies := map[string]*ColumnFamilyDescriptor{}
	for i := range oldTable.ColumnFamilies {
		oldFamilies[oldTable.ColumnFamilies[i].Name] = &oldTable.ColumnFamilies[i]
	}
	for i := range newTable.ColumnFamilies {
		newFamily := &newTable.ColumnFamilies[i]
		object := fmt.Sprintf("column family '%s.%s'", oldTable.Name, newFamily.Name)
		oldFamily, ok := oldFamilies[newFamily.Name]
		if !ok {
			changes = append(changes, PropertyChange{
				Object:   object,
				Property: "presence",
				OldValue: "absent",
				NewValue: "present",
			})
			continue
		}
		delete(oldFamilies, newFamily.Name)
		changes = append(changes, diffProperties(object, oldFamily.Properties, newFamily.Properties)...)
	}
	for name := range util.CanonicalMapIter(oldFamilies) {
		changes = append(changes, PropertyChange{
			Object:   fmt.Sprintf("column family '%s.%s'", oldTable.Name, name),
			Property: "presence",
			OldValue: "present",
			NewValue: "absent",
		})
	}
	return changes
}

func diffProperties(object string, oldProps, newProps map[string]string) []PropertyChange {
	var changes []PropertyChange
	for key, newValue := range util.CanonicalMapIter(newProps) {
		if oldValue, ok := oldProps[key]; !ok || oldValue != newValue {
			changes = append(changes, PropertyChange{
				Object:   object,
				Property: key,
				OldValue: oldValue,
				NewValue: newValue,
			})
		}
	}
	for key, oldValue := range util.CanonicalMapIter(oldProps) {
		if _, ok := newProps[key]; !ok {
			changes = append(changes, PropertyChange{
				Object:   object,
				Property: key,
				OldValue: oldValue,
				NewValue: "",
			})
		}
	}
	return changes
}

type GeneratorConfig struct {
	TargetTables []string
	SkipTables   []string
}

// FilterTables removes changes for tables outside target_tables or inside
// skip_tables. A filtered table disappears from every phase of the script,
// including the summary.
func FilterTables(changes []SchemaChange, config GeneratorConfig) []SchemaChange {
	filtered := []SchemaChange{}
	for _, change := range changes {
		if len(config.TargetTables) > 0 && !containsString(config.TargetTables, change.TableName) {
			continue
		}
		if containsString(config.SkipTables, change.TableName) {
			continue
		}
		filtered = append(filtered, change)
	}
	return filtered
}

func containsString(strs []string, str string) bool {
	for _, s := range strs {
		if s == str {
			return true
		}
	}
	return false
}

// ParseGeneratorConfig reads a --config YAML file.
func ParseGeneratorConfig(configFile string) GeneratorConfig {
	buf, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatal(err)
	}
	return parseGeneratorConfigYaml(buf)
}

// ParseGeneratorConfigString parses a --config-inline YAML object.
func ParseGeneratorConfigString(source string) GeneratorConfig {
	return parseGeneratorConfigYaml([]byte(source))
}

func parseGeneratorConfigYaml(buf []byte) GeneratorConfig {
	var config struct {
		TargetTables []string `yaml:"target_tables"`
		SkipTables   []string `yaml:"skip_tables"`
	}
	if err := yaml.UnmarshalStrict(buf, &config); err != nil {
		log.Fatal(err)
	}
	return GeneratorConfig{
		TargetTables: config.TargetTables,
		SkipTables:   config.SkipTables,
	}
}

// MergeGeneratorConfigs merges configs in the order the flags were given;
// later lists append to earlier ones.
func MergeGeneratorConfigs(configs []GeneratorConfig) GeneratorConfig {
	var merged GeneratorConfig
	for _, c := range configs {
		merged.TargetTables = append(merged.TargetTables, c.TargetTables...)
		merged.SkipTables = append(merged.SkipTables, c.SkipTables...)
	}
	sort.Strings(merged.TargetTables)
	sort.Strings(merged.SkipTables)
	return merged
}
