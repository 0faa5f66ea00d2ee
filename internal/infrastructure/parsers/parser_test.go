package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParser_Parse_ValidInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []RawEntry
	}{
		{
			name:  "single entry",
			input: `[{"id": 25, "name": "Pikachu", "types": ["electric"]}]`,
			expected: []RawEntry{
				{ID: 25, Name: "Pikachu", Types: []string{"electric"}, LineNum: 1},
			},
		},
		{
			name:  "id only",
			input: `[{"id": 1}, {"id": 7}]`,
			expected: []RawEntry{
				{ID: 1, LineNum: 1},
				{ID: 7, LineNum: 2},
			},
		},
		{
			name:     "empty array",
			input:    "[]",
			expected: []RawEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &JSONParser{}
			result, err := parser.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestJSONParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{name: "not json", input: "not json", errMsg: "parsing JSON"},
		{name: "missing id", input: `[{"name": "Pikachu"}]`, errMsg: "invalid id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &JSONParser{}
			_, err := parser.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCSVParser_Parse_ValidInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []RawEntry
	}{
		{
			name:  "export layout",
			input: "id,number,name,types\n1,#001,Bulbasaur,grass;poison\n",
			expected: []RawEntry{
				{ID: 1, Name: "Bulbasaur", Types: []string{"grass", "poison"}, LineNum: 2},
			},
		},
		{
			name:  "id column only",
			input: "id\n4\n7\n",
			expected: []RawEntry{
				{ID: 4, LineNum: 2},
				{ID: 7, LineNum: 3},
			},
		},
		{
			name:     "header only",
			input:    "id,name\n",
			expected: nil,
		},
		{
			name:  "columns in different order",
			input: "name,ID\nSquirtle,7\n",
			expected: []RawEntry{
				{ID: 7, Name: "Squirtle", LineNum: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &CSVParser{}
			result, err := parser.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCSVParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{
			name:   "missing id column",
			input:  "name,types\nPikachu,electric\n",
			errMsg: "missing required column: id",
		},
		{
			name:   "invalid id value",
			input:  "id,name\nabc,Pikachu\n",
			errMsg: "line 2: invalid id",
		},
		{
			name:   "non-positive id",
			input:  "id\n0\n",
			errMsg: "invalid id",
		},
		{
			name:   "empty input",
			input:  "",
			errMsg: "reading CSV header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &CSVParser{}
			_, err := parser.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestIDs(t *testing.T) {
	entries := []RawEntry{{ID: 7}, {ID: 1}, {ID: 7}}
	assert.Equal(t, []int{7, 1, 7}, IDs(entries))
}

func TestForFormat(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFormat("json"))
	assert.IsType(t, &CSVParser{}, ForFormat("CSV"))
	assert.Nil(t, ForFormat("markdown"))
}

func TestForFile(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFile("favorites.json"))
	assert.IsType(t, &CSVParser{}, ForFile("export.CSV"))
	assert.Nil(t, ForFile("file.txt"))
	assert.Nil(t, ForFile("noextension"))
}
