// Package schema holds the HBase table descriptor model and computes the
// table-level diff between two schema snapshots. Script construction never
// happens here.
package schema

import (
	"fmt"
)

// TableDescriptor is the declarative definition of one table: its name, its
// table-level properties, and its column families. Property maps are
// logically unordered; column families keep the order the snapshot declares.
type TableDescriptor struct {
	Name           string
	Properties     map[string]string
	ColumnFamilies []ColumnFamilyDescriptor
}

// ColumnFamilyDescriptor is a named grouping of columns carrying its own
// property map.
type ColumnFamilyDescriptor struct {
	Name       string
	Properties map[string]string
}

// Schema is a full snapshot of the tables on (or desired for) a cluster.
type Schema struct {
	Tables []TableDescriptor
}

func (s *Schema) findTable(name string) *TableDescriptor {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}

// ChangeType classifies what a SchemaChange does to its table.
type ChangeType int

const (
	ChangeCreate ChangeType = iota
	ChangeAlter
	ChangeDrop
	ChangeIgnore
)

func (t ChangeType) String() string {
	switch t {
	case ChangeCreate:
		return "CREATE"
	case ChangeAlter:
		return "ALTER"
	case ChangeDrop:
		return "DROP"
	case ChangeIgnore:
		return "IGNORE"
	default:
		return fmt.Sprintf("ChangeType(%d)", int(t))
	}
}

// SchemaChange is one table's transition between the current and desired
// snapshots. OldTable is set for ALTER/DROP, NewTable for CREATE/ALTER.
// PropertyChanges is reporting-only: mutations always re-apply the entire
// new descriptor, never a delta.
type SchemaChange struct {
	TableName       string
	Type            ChangeType
	OldTable        *TableDescriptor
	NewTable        *TableDescriptor
	PropertyChanges []PropertyChange
}

// PropertyChange describes one changed property for the script's summary
// header. It carries no mutation semantics.
type PropertyChange struct {
	Object   string // e.g. "table 'events'" or "column family 'events.d'"
	Property string
	OldValue string
	NewValue string
}

func (p PropertyChange) String() string {
	return fmt.Sprintf("%s on %s: %q => %q", p.Property, p.Object, p.OldValue, p.NewValue)
}
