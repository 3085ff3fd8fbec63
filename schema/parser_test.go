package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSchema(t *testing.T) {
	source := `
tables:
  - name: users
    properties:
      MAX_FILESIZE: "1073741824"
    column_families:
      - name: d
        properties:
          VERSIONS: "3"
      - name: idx
  - name: events
`
	schema, err := ParseSchema([]byte(source))
	assert.NoError(t, err)
	assert.Len(t, schema.Tables, 2)

	users := schema.Tables[0]
	assert.Equal(t, "users", users.Name)
	assert.Equal(t, map[string]string{"MAX_FILESIZE": "1073741824"}, users.Properties)
	assert.Len(t, users.ColumnFamilies, 2)
	assert.Equal(t, "d", users.ColumnFamilies[0].Name)
	assert.Equal(t, map[string]string{"VERSIONS": "3"}, users.ColumnFamilies[0].Properties)
	assert.Equal(t, "idx", users.ColumnFamilies[1].Name)

	assert.Equal(t, "events", schema.Tables[1].Name)
}

func TestParseSchemaEmpty(t *testing.T) {
	schema, err := ParseSchema([]byte(""))
	assert.NoError(t, err)
	assert.Empty(t, schema.Tables)
}

func TestParseSchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{
			name:    "duplicate table",
			source:  "tables:\n  - name: users\n  - name: users\n",
			wantErr: "table 'users' is defined twice",
		},
		{
			name:    "empty table name",
			source:  "tables:\n  - properties:\n      K: \"1\"\n",
			wantErr: "table with empty name",
		},
		{
			name:    "duplicate column family",
			source:  "tables:\n  - name: users\n    column_families:\n      - name: d\n      - name: d\n",
			wantErr: "table 'users' defines column family 'd' twice",
		},
		{
			name:    "empty column family name",
			source:  "tables:\n  - name: users\n    column_families:\n      - properties:\n          K: \"1\"\n",
			wantErr: "column family with an empty name",
		},
		{
			name:    "unknown key",
			source:  "tables:\n  - name: users\n    propertees:\n      K: \"1\"\n",
			wantErr: "failed to parse schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tt.source))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestExportSchemaCanonical(t *testing.T) {
	schema := &Schema{Tables: []TableDescriptor{
		{Name: "users", Properties: map[string]string{"Z": "1", "A": "2"}},
		{Name: "events", ColumnFamilies: []ColumnFamilyDescriptor{{Name: "d", Properties: map[string]string{"VERSIONS": "3"}}}},
	}}

	out, err := ExportSchema(schema)
	assert.NoError(t, err)

	expected := `tables:
- name: events
  column_families:
  - name: d
    properties:
      VERSIONS: "3"
- name: users
  properties:
    A: "2"
    Z: "1"
`
	assert.Equal(t, expected, out)

	// exports must parse back to an equal schema
	parsed, err := ParseSchema([]byte(out))
	assert.NoError(t, err)
	assert.Len(t, parsed.Tables, 2)
	assert.Equal(t, "events", parsed.Tables[0].Name)
	assert.Equal(t, map[string]string{"Z": "1", "A": "2"}, parsed.Tables[1].Properties)
}
