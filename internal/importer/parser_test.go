package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"task-widget/internal/domain"
	"task-widget/internal/errors"
)

func parse(t *testing.T, content string) *Result {
	t.Helper()
	result, err := New().Parse(strings.NewReader(content))
	require.NoError(t, err)
	return result
}

func TestParse_BasicRow(t *testing.T) {
	result := parse(t, "Name,Date,Course\n\"Essay\",06/20/2024,\"CS101\"\n")

	require.Equal(t, 1, result.Imported)
	require.Len(t, result.Tasks, 1)
	assert.Equal(t, ',', result.Delimiter)

	task := result.Tasks[0]
	assert.Equal(t, "Essay", task.Text)
	assert.Equal(t, "CS101", task.Course)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), *task.DueDate)
	assert.False(t, task.Completed)
	assert.Equal(t, domain.CategoryDated, task.Category)
	assert.NotEqual(t, uuid.Nil, task.ID)
}

func TestParse_TitleFallsBackToFirstValue(t *testing.T) {
	result := parse(t, "Name,Date,Whatever\n,,Read chapter 4\n")

	require.Equal(t, 1, result.Imported)
	assert.Equal(t, "Read chapter 4", result.Tasks[0].Text)
	assert.Nil(t, result.Tasks[0].DueDate)
}

func TestParse_HeaderOnly(t *testing.T) {
	result := parse(t, "Name,Date,Course\n")

	assert.Equal(t, 0, result.Imported)
	assert.Empty(t, result.Tasks)
	assert.Equal(t, 0, result.Skipped)
}

func TestParse_EmptyInput(t *testing.T) {
	result := parse(t, "")
	assert.Equal(t, 0, result.Imported)
}

func TestParse_SkipsRowsWithoutTitle(t *testing.T) {
	result := parse(t, "Task,Due\n,\nWrite report,2024-07-01\n  ,  \n")

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, "Write report", result.Tasks[0].Text)
}

func TestParse_HeaderSynonyms(t *testing.T) {
	content := " TITLE ;Notes;Due_Date;Class\n" +
		" Lab write-up ; bring goggles ;6/3/24; CHEM 2 \n"
	result := parse(t, content)

	require.Equal(t, 1, result.Imported)
	assert.Equal(t, ';', result.Delimiter)

	task := result.Tasks[0]
	assert.Equal(t, "Lab write-up", task.Text)
	assert.Equal(t, "bring goggles", task.Description)
	assert.Equal(t, "CHEM 2", task.Course)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), *task.DueDate)
}

func TestParse_FieldPrecedence(t *testing.T) {
	result := parse(t, "title,task,name,due,date\nthird,second,,2024-01-02,\n")

	require.Equal(t, 1, result.Imported)
	assert.Equal(t, "second", result.Tasks[0].Text, "task is consulted before title once name is empty")
	require.NotNil(t, result.Tasks[0].DueDate)
	assert.Equal(t, 2, result.Tasks[0].DueDate.Day())
}

func TestParse_TabDelimited(t *testing.T) {
	result := parse(t, "Name\tDate\tCourse\nQuiz prep\t06/21/2024\tBIO\n")

	require.Equal(t, 1, result.Imported)
	assert.Equal(t, '\t', result.Delimiter)
	assert.Equal(t, "BIO", result.Tasks[0].Course)
}

func TestParse_UnparseableDateImportsUndated(t *testing.T) {
	result := parse(t, "Name,Date\nEssay,sometime next week\n")

	require.Equal(t, 1, result.Imported)
	assert.Nil(t, result.Tasks[0].DueDate)
}

func TestParse_RaggedRows(t *testing.T) {
	result := parse(t, "Name,Date,Course\nShort\nLong,06/20/2024,CS,extra,cells\n")

	require.Equal(t, 2, result.Imported)
	assert.Equal(t, "Short", result.Tasks[0].Text)
	assert.Equal(t, "CS", result.Tasks[1].Course)
}

func TestParse_QuotedDelimiters(t *testing.T) {
	result := parse(t, "Name,Notes\n\"Essay, final draft\",\"line one\nline two\"\n")

	require.Equal(t, 1, result.Imported)
	assert.Equal(t, "Essay, final draft", result.Tasks[0].Text)
	assert.Equal(t, "line one\nline two", result.Tasks[0].Description)
}

func TestParse_UTF8BOM(t *testing.T) {
	result := parse(t, "\ufeffName,Date\nEssay,06/20/2024\n")

	require.Equal(t, 1, result.Imported)
	assert.Equal(t, "Essay", result.Tasks[0].Text, "the BOM must not leak into the name header")
}

func TestParse_UTF16WithBOM(t *testing.T) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := encoder.String("Name\tCourse\r\nEssay\tCS101\r\n")
	require.NoError(t, err)

	result := parse(t, encoded)

	require.Equal(t, 1, result.Imported)
	assert.Equal(t, "Essay", result.Tasks[0].Text)
	assert.Equal(t, "CS101", result.Tasks[0].Course)
}

func TestParse_CustomRules(t *testing.T) {
	rules := append([]Rule{}, DefaultRules...)
	rules[0] = Rule{Field: FieldTitle, Headers: []string{"assignment"}}

	result, err := New(WithRules(rules)).Parse(strings.NewReader("Assignment,Other\nPset 3,x\n"))
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)
	assert.Equal(t, "Pset 3", result.Tasks[0].Text)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Date\nEssay,2024-06-20\nQuiz,06/22/24\n"), 0644))

	result, err := New().ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 22, result.Tasks[1].DueDate.Day())
}

func TestParseFile_Unopenable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	result, err := New().ParseFile(path)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeImport))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"four digit year", "06/20/2024", time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), true},
		{"no leading zeros", "6/2/2024", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), true},
		{"two digit year", "06/20/24", time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), true},
		{"year first", "2024-06-20", time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), true},
		{"iso date time", "2024-06-20T14:30:00", time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), true},
		{"blank", "  ", time.Time{}, false},
		{"nonsense", "tomorrow", time.Time{}, false},
		{"impossible day", "02/30/2024", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
