package synonyms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_PreservesTableOrder(t *testing.T) {
	table := Default()

	require.Equal(t, 67, table.Len())
	assert.Equal(t, Entry{Phrase: "auto_id", Column: "auto_id"}, table.Entries[0])
	assert.Equal(t, "Pending_days_bucket", table.Entries[table.Len()-1].Column)

	idx := func(col string) int {
		for i, e := range table.Entries {
			if e.Column == col {
				return i
			}
		}
		return -1
	}
	assert.Less(t, idx("program"), idx("program_officer1"))
	assert.Less(t, idx("submittedby"), idx("submittedbyrole"))
	assert.Less(t, idx("invoiceclaimamount"), idx("invoiceclaimamount_Lakhs"))
}

func TestDefault_ReturnsCopy(t *testing.T) {
	a := Default()
	a.Entries[0].Column = "mutated"
	assert.Equal(t, "auto_id", Default().Entries[0].Column)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
		wantLen int
	}{
		{
			name:    "valid",
			body:    `{"version":"1","entries":[{"phrase":"claim amount","column":"invoiceclaimamount"},{"phrase":"status","column":"status"}]}`,
			wantLen: 2,
		},
		{
			name:    "empty entries",
			body:    `{"version":"1","entries":[]}`,
			wantErr: "entries",
		},
		{
			name:    "column is not an identifier",
			body:    `{"version":"1","entries":[{"phrase":"x","column":"status; drop table"}]}`,
			wantErr: "column",
		},
		{
			name:    "empty phrase",
			body:    `{"version":"1","entries":[{"phrase":"","column":"status"}]}`,
			wantErr: "phrase",
		},
		{
			name:    "missing version",
			body:    `{"entries":[{"phrase":"a","column":"b"}]}`,
			wantErr: "version",
		},
		{
			name:    "unknown entry field",
			body:    `{"version":"1","entries":[{"phrase":"a","column":"b","weight":2}]}`,
			wantErr: "weight",
		},
		{
			name:    "not json",
			body:    `{`,
			wantErr: "not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse([]byte(tt.body))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, table.Len())
		})
	}
}

func TestLoad(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), table.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "synonyms.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2","entries":[{"phrase":"claim amount","column":"invoiceclaimamount"}]}`), 0o600))
	table, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2", table.Version)
	assert.Equal(t, "invoiceclaimamount", table.Entries[0].Column)
}

func TestLoad_ShippedFile(t *testing.T) {
	table, err := Load(filepath.Join("..", "..", "configs", "synonyms.json"))
	require.NoError(t, err)
	assert.Greater(t, table.Len(), Default().Len())
	assert.Equal(t, Default().Entries, table.Entries[:Default().Len()])
}

func TestTable_Columns(t *testing.T) {
	table := &Table{Entries: []Entry{
		{Phrase: "claim amount", Column: "invoiceclaimamount"},
		{Phrase: "amount", Column: "invoiceclaimamount"},
		{Phrase: "status", Column: "status"},
	}}
	assert.Equal(t, []string{"invoiceclaimamount", "status"}, table.Columns())
}
