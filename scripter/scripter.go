// Package scripter turns an ordered schema change list into an executable
// hbase shell (JRuby) script. The script verifies the cluster's existing
// schema, applies the creations, alterations and drops, and then verifies
// the result, so an operator can run it unattended.
//
// Generation is deterministic: equal change lists produce byte-identical
// scripts. The change list's order is preserved; only property maps (and
// the summary's property change descriptions) are sorted.
package scripter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbasedef/hbasedef/schema"
	"github.com/hbasedef/hbasedef/util"
)

const banner = "###############################################################################"

// Generate produces the patch script for the given changes. It fails only on
// malformed input, such as a CREATE change without a new table descriptor;
// over well-formed changes it is total.
func Generate(changes []schema.SchemaChange) (string, error) {
	if err := validateChanges(changes); err != nil {
		return "", err
	}

	s := &scripter{changes: changes}
	s.scriptHeaders()
	s.scriptPreValidations()
	s.scriptChanges()
	s.scriptPostValidations()
	s.scriptFooters()
	return s.buf.String(), nil
}

func validateChanges(changes []schema.SchemaChange) error {
	for _, c := range changes {
		if c.TableName == "" {
			return fmt.Errorf("schema change with empty table name")
		}
		switch c.Type {
		case schema.ChangeCreate:
			if c.NewTable == nil {
				return fmt.Errorf("CREATE change for table '%s' has no new table descriptor", c.TableName)
			}
			if c.OldTable != nil {
				return fmt.Errorf("CREATE change for table '%s' must not have an old table descriptor", c.TableName)
			}
		case schema.ChangeAlter:
			if c.OldTable == nil || c.NewTable == nil {
				return fmt.Errorf("ALTER change for table '%s' needs both old and new table descriptors", c.TableName)
			}
		case schema.ChangeDrop:
			if c.OldTable == nil {
				return fmt.Errorf("DROP change for table '%s' has no old table descriptor", c.TableName)
			}
			if c.NewTable != nil {
				return fmt.Errorf("DROP change for table '%s' must not have a new table descriptor", c.TableName)
			}
		case schema.ChangeIgnore:
			// nothing required
		default:
			return fmt.Errorf("schema change for table '%s' has unknown type %v", c.TableName, c.Type)
		}
	}
	return nil
}

type scripter struct {
	changes []schema.SchemaChange
	buf     strings.Builder
}

func (s *scripter) line(str string) {
	s.buf.WriteString(str)
	s.buf.WriteString("\n")
}

func (s *scripter) linef(format string, args ...any) {
	fmt.Fprintf(&s.buf, format, args...)
	s.buf.WriteString("\n")
}

func (s *scripter) changesOfType(changeType schema.ChangeType) []schema.SchemaChange {
	var result []schema.SchemaChange
	for _, c := range s.changes {
		if c.Type == changeType {
			result = append(result, c)
		}
	}
	return result
}

func (s *scripter) scriptHeaders() {
	s.line(banner)
	s.line("# HBase Schema Update Script")
	s.line("#")
	s.line("# Summary:")
	s.line("#")
	s.summarize("Create", schema.ChangeCreate)
	s.summarize("Alter", schema.ChangeAlter)
	s.summarize("Drop", schema.ChangeDrop)
	s.summarize("Ignore", schema.ChangeIgnore)
	s.line(banner)
	s.line("")
	s.line(banner)
	s.line("# Initialization")
	s.line(banner)
	s.line("include Java")
	s.line("import org.apache.hadoop.hbase.HBaseConfiguration")
	s.line("import org.apache.hadoop.hbase.HColumnDescriptor")
	s.line("import org.apache.hadoop.hbase.HConstants")
	s.line("import org.apache.hadoop.hbase.HTableDescriptor")
	s.line("import org.apache.hadoop.hbase.client.HBaseAdmin")
	s.line("import org.apache.hadoop.hbase.client.HTable")
	s.line("import org.apache.hadoop.hbase.util.Bytes")
	s.line("")
	s.line("conf = HBaseConfiguration.new")
	s.line("admin = HBaseAdmin.new(conf)")
	s.line("preErrors = Array.new")
	s.line("preWarnings = Array.new")
	s.line("postErrors = Array.new")
	s.line("postWarnings = Array.new")
	s.line("")
	s.line(banner)
	s.line("# Utility methods")
	s.line(banner)
	s.line("")
	s.line("def compare(errs, obj, action, attr, val)")
	s.line("    if (obj.getValue(attr).to_s != val)")
	s.line(`        errs << "Object '#{obj.getNameAsString()}', which is targeted for #{action} by this script, should have had a value of \"#{val}\" for #{attr}, but it was \"#{obj.getValue(attr)}\" instead.\n"`)
	s.line("    end")
	s.line("end")
	s.line("")
}

// summarize emits one "#  * Create N tables:" block, with the table names
// and, for alters, the property change descriptions in sorted order.
func (s *scripter) summarize(verb string, changeType schema.ChangeType) {
	changes := s.changesOfType(changeType)

	suffix := ":"
	if len(changes) == 0 {
		suffix = "."
	}
	plural := "s"
	if len(changes) == 1 {
		plural = ""
	}
	s.linef("#  * %s %d table%s%s", verb, len(changes), plural, suffix)

	for _, c := range changes {
		s.linef("#       %s", c.TableName)
		descriptions := util.TransformSlice(c.PropertyChanges, func(pc schema.PropertyChange) string {
			return "property change: " + pc.String()
		})
		sort.Strings(descriptions)
		for _, d := range descriptions {
			s.linef("#       %s", d)
		}
	}
	s.line("#")
}

func (s *scripter) scriptPreValidations() {
	s.line(banner)
	s.line("# Pre Validation")
	s.line("#")
	s.line("# This step makes sure that the existing schema on the cluster matches what you")
	s.line("# think should be there. It will emit warnings for problems that won't make the")
	s.line("# script fail; it will emit errors and exit if it encounters any problems that")
	s.line("# will make the script fail.")
	s.line(banner)

	for _, c := range s.changes {
		switch c.Type {
		case schema.ChangeCreate:
			s.verifyTableAbsent(c.TableName, phasePre, fatal)
		case schema.ChangeAlter:
			// alters re-apply the full new descriptor, so undetected drift
			// would be silently discarded: any mismatch is an error
			s.verifyTablePresent(c.TableName, phasePre, fatal)
			s.verifyTableMatches(c.OldTable, "alter", phasePre, fatal)
		case schema.ChangeDrop:
			// dropping is safe even if the table has drifted: only warn
			s.verifyTablePresent(c.TableName, phasePre, fatal)
			s.verifyTableMatches(c.OldTable, "drop", phasePre, advisory)
		case schema.ChangeIgnore:
		}
	}
	s.line("")
	s.line("# If any pre-validations had errors, report them and exit the script.")
	s.line("if (preErrors.length > 0)")
	s.line(`    puts "There were #{preErrors.length} error(s) and #{preWarnings.length} warning(s) during table pre-validation:"`)
	s.line(`    print "#{preErrors.collect{|msg| "Error: " + msg}}"`)
	s.line(`    print "#{preWarnings.collect{|msg| "Warning: " + msg}}"`)
	s.line("    raise")
	s.line("    exit")
	s.line("elsif (preWarnings.length > 0)")
	s.line(`    puts "Pre-validations successful with #{preWarnings.length} warnings:"`)
	s.line(`    print "#{preWarnings.collect{|msg| "Warning: " + msg}}"`)
	s.line("else")
	s.line(`    puts "Pre-validations successful."`)
	s.line("end")
	s.line("")
}

func (s *scripter) scriptChanges() {
	s.line(banner)
	s.line("# Modifications")
	s.line("#")
	s.line("# This step actually modifies the schema on the cluster.")
	s.line(banner)
	s.line("")

	for _, c := range s.changes {
		switch c.Type {
		case schema.ChangeCreate:
			s.scriptTableAdd(c.NewTable)
		case schema.ChangeAlter:
			s.scriptTableAlter(c.NewTable)
		case schema.ChangeDrop:
			s.scriptTableDrop(c.OldTable)
		case schema.ChangeIgnore:
			// nothing to do
		}
	}
	s.line(`puts "Table creations & modifications successful."`)
	s.line("")
}

func (s *scripter) scriptPostValidations() {
	s.line(banner)
	s.line("# Post Validation")
	s.line("#")
	s.line("# This step ensures that changes were successful, and that the resulting schema")
	s.line("# on the cluster matches what you want to be there.")
	s.line(banner)

	for _, c := range s.changes {
		switch c.Type {
		case schema.ChangeCreate:
			s.verifyTablePresent(c.TableName, phasePost, fatal)
			s.verifyTableMatches(c.NewTable, "create", phasePost, fatal)
		case schema.ChangeAlter:
			s.verifyTablePresent(c.TableName, phasePost, fatal)
			s.verifyTableMatches(c.NewTable, "alter", phasePost, fatal)
		case schema.ChangeDrop:
			s.verifyTableAbsent(c.TableName, phasePost, fatal)
		case schema.ChangeIgnore:
		}
	}
	s.line("")
	s.line("# The changes have already been applied, so post-validation problems are")
	s.line("# reported but never abort the script.")
	s.line("if (postErrors.length > 0 || postWarnings.length > 0)")
	s.line(`    puts "There were #{postErrors.length} error(s) and #{postWarnings.length} warning(s) during table post-validation:"`)
	s.line(`    print "#{postErrors.collect{|msg| "Error: " + msg}}"`)
	s.line(`    print "#{postWarnings.collect{|msg| "Warning: " + msg}}"`)
	s.line("else")
	s.line(`    puts "Post-validation successful."`)
	s.line("end")
	s.line("")
}

func (s *scripter) scriptFooters() {
	s.line(banner)
	s.line("# Complete")
	s.line(banner)
	s.line(`puts "Script complete. Share and enjoy."`)
	s.line("exit")
}
