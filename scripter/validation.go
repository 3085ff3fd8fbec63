package scripter

import (
	"github.com/hbasedef/hbasedef/schema"
)

// severity decides whether a failed run-time check lands in the script's
// errors collection, which aborts after pre-validation, or in the warnings
// collection, which is only reported.
type severity int

const (
	fatal severity = iota
	advisory
)

type phase string

const (
	phasePre  phase = "pre"
	phasePost phase = "post"
)

// collection names the ruby array a failed check appends to: preErrors,
// preWarnings, postErrors or postWarnings.
func collection(p phase, sev severity) string {
	if sev == fatal {
		return string(p) + "Errors"
	}
	return string(p) + "Warnings"
}

// verifyTableAbsent emits a check that fails if the table exists.
func (s *scripter) verifyTableAbsent(tableName string, p phase, sev severity) {
	errs := collection(p, sev)
	s.linef("# Table '%s' should not exist", tableName)
	s.linef("tablename = \"%s\"", tableName)
	s.line("if admin.tableExists(tablename)")
	s.linef(`    %s << "Table '#{tablename}' should not already exist, but it does.\n"`, errs)
	s.line("end")
	s.line("")
}

// verifyTablePresent emits a check that fails if the table does not exist.
func (s *scripter) verifyTablePresent(tableName string, p phase, sev severity) {
	errs := collection(p, sev)
	s.linef("# Table '%s' should exist", tableName)
	s.linef("tablename = \"%s\"", tableName)
	s.line("if !admin.tableExists(tablename)")
	s.linef(`    %s << "Table '#{tablename}' should exist, but it does not.\n"`, errs)
	s.line("end")
	s.line("")
}

// verifyTableMatches emits one compare() call per declared property of the
// table and of each of its column families, against the live descriptor.
// Properties are compared in canonical order. The block is guarded by an
// existence check so a missing table reports once, from verifyTablePresent,
// rather than crashing here.
func (s *scripter) verifyTableMatches(table *schema.TableDescriptor, operation string, p phase, sev severity) {
	errs := collection(p, sev)
	verb := "error"
	if sev == advisory {
		verb = "warn"
	}
	s.linef("# Table '%s' will %s if it doesn't match the expected definition.", table.Name, verb)
	s.linef("tablename = \"%s\"", table.Name)
	s.line("if admin.tableExists(tablename)")
	s.line("    table = admin.getTableDescriptor(tablename.bytes.to_a)")
	for key, value := range sortedProperties(table.Properties) {
		s.linef(`    compare(%s, table, "%s", "%s", "%s")`, errs, operation, key, value)
	}
	for _, cf := range table.ColumnFamilies {
		s.linef("    # Column family: %s", cf.Name)
		s.linef("    cfname = \"%s\"", cf.Name)
		s.line("    cf = table.getFamily(cfname.bytes.to_a)")
		for key, value := range sortedProperties(cf.Properties) {
			s.linef(`    compare(%s, cf, "%s", "%s", "%s")`, errs, operation, key, value)
		}
	}
	s.line("end")
	s.line("")
}
