package scripter

import (
	"github.com/hbasedef/hbasedef/schema"
)

// PreSplitRegionsProperty is the table-level property that asks table
// creation to pre-allocate that many regions across the full key range.
const PreSplitRegionsProperty = "NUMREGIONS"

// scriptTableAdd emits a construct-and-configure sequence for a new table:
// table properties, then each column family's properties, then the create
// call. Fails at run time if the table already exists; pre-validation
// guards that.
func (s *scripter) scriptTableAdd(newTable *schema.TableDescriptor) {
	s.linef("# Create Table: %s", newTable.Name)
	s.linef("tablename = \"%s\"", newTable.Name)
	s.line("table = HTableDescriptor.new(tablename)")
	s.line("# set table properties")
	for key, value := range sortedProperties(newTable.Properties) {
		s.linef(`table.setValue("%s", "%s")`, key, value)
	}
	for _, cf := range newTable.ColumnFamilies {
		s.linef(`cf = HColumnDescriptor.new("%s")`, cf.Name)
		for key, value := range sortedProperties(cf.Properties) {
			s.linef(`cf.setValue("%s", "%s")`, key, value)
		}
		s.line("table.addFamily(cf)")
	}
	s.line(`puts "Creating table '#{tablename}' ... "`)

	// Pre-splitting is a different createTable overload, spanning the whole
	// key range.
	if regions, ok := newTable.Properties[PreSplitRegionsProperty]; ok {
		s.linef(`admin.createTable(table, Bytes.toBytes("\x00"), Bytes.toBytes("\xFF"), %s)`, regions)
	} else {
		s.line("admin.createTable(table)")
	}
	s.line(`puts "Created table '#{tablename}'"`)
	s.line("")
}

// scriptTableDrop emits exists -> disable if enabled -> delete. The admin
// API rejects deleting an enabled table, and deleting a missing table is an
// error, so both guards are load-bearing.
func (s *scripter) scriptTableDrop(oldTable *schema.TableDescriptor) {
	s.linef("# Drop Table: %s", oldTable.Name)
	s.linef("tablename = \"%s\"", oldTable.Name)
	s.line("if admin.tableExists(tablename)")
	s.line("  if admin.isTableEnabled(tablename)")
	s.line(`    puts "Disabling table '#{tablename}' prior to dropping it ..."`)
	s.line("    admin.disableTable(tablename)")
	s.line("  end")
	s.line(`  puts "Dropping table '#{tablename}' ..."`)
	s.line("  admin.deleteTable(tablename)")
	s.line("end")
	s.line(`puts "Dropped table '#{tablename}'"`)
	s.line("")
}

// scriptTableAlter fetches the live descriptor, overwrites every property
// from the new descriptor, and cycles disable -> modify -> enable, since
// schema modification is rejected while the table is serving traffic.
func (s *scripter) scriptTableAlter(newTable *schema.TableDescriptor) {
	s.linef("# Modify table: %s", newTable.Name)
	s.linef("tablename = \"%s\"", newTable.Name)
	s.line("table = admin.getTableDescriptor(tablename.bytes.to_a)")
	for key, value := range sortedProperties(newTable.Properties) {
		s.linef(`table.setValue("%s", "%s")`, key, value)
	}
	for _, cf := range newTable.ColumnFamilies {
		s.linef(`cf = HColumnDescriptor.new("%s")`, cf.Name)
		for key, value := range sortedProperties(cf.Properties) {
			s.linef(`cf.setValue("%s", "%s")`, key, value)
		}
		s.line("table.addFamily(cf)")
	}
	s.line(`puts "Disabling table '#{tablename}' prior to modification ..."`)
	s.line("admin.disableTable(tablename)")
	s.line(`puts "Modifying table '#{tablename}' ..."`)
	s.line("admin.modifyTable(tablename.bytes.to_a, table)")
	s.line(`puts "Enabling table '#{tablename}' after modification ..."`)
	s.line("admin.enableTable(tablename)")
	s.line(`puts "Modified table '#{tablename}'"`)
	s.line("")
}
