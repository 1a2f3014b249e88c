// Package importer turns loosely structured spreadsheet exports into dated
// tasks. Header names, delimiters and date formats are all guessed.
package importer

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"task-widget/internal/domain"
	"task-widget/internal/errors"
)

// DefaultSampleSize is how many leading bytes are inspected to pick a delimiter.
const DefaultSampleSize = 4096

// Field is a task attribute a CSV column can feed.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldDueDate
	FieldCourse
)

// Rule maps a field to the header names that may carry it. Headers are
// compared after trimming and lower-casing; earlier headers take precedence.
type Rule struct {
	Field   Field
	Headers []string
}

// DefaultRules are the header synonyms recognised out of the box.
var DefaultRules = []Rule{
	{Field: FieldTitle, Headers: []string{"name", "task", "title"}},
	{Field: FieldDescription, Headers: []string{"description", "notes"}},
	{Field: FieldDueDate, Headers: []string{"date", "due date", "due_date", "due"}},
	{Field: FieldCourse, Headers: []string{"course", "class"}},
}

// Result is the outcome of one import. Nothing is stored by the parser.
type Result struct {
	Tasks     []domain.Task
	Imported  int
	Skipped   int
	Delimiter rune
}

// Parser reads CSV exports into tasks.
type Parser struct {
	sampleSize int
	rules      []Rule
	log        zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithSampleSize sets the number of bytes used for delimiter detection.
func WithSampleSize(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.sampleSize = n
		}
	}
}

// WithRules replaces the header rules.
func WithRules(rules []Rule) Option {
	return func(p *Parser) {
		p.rules = rules
	}
}

// WithLogger sets the logger used for per-row diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.log = logger.With().Str("component", "importer").Logger()
	}
}

// New creates a parser with the default rules.
func New(opts ...Option) *Parser {
	p := &Parser{
		sampleSize: DefaultSampleSize,
		rules:      DefaultRules,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile opens path and parses it. Failing to open or read the file is an
// import error carrying the underlying cause.
func (p *Parser) ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewImportError(path, err)
	}
	defer f.Close()

	result, err := p.parse(f, path)
	if err != nil {
		return nil, err
	}
	p.log.Debug().Str("path", path).Int("imported", result.Imported).Int("skipped", result.Skipped).Msg("csv parsed")
	return result, nil
}

// Parse reads CSV content from r. A header with no data rows is a successful
// result with nothing imported.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	return p.parse(r, "csv")
}

func (p *Parser) parse(r io.Reader, source string) (*Result, error) {
	// BOMOverride strips a UTF-8 BOM and switches to UTF-16 when one is present
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, errors.NewImportError(source, err)
	}
	content := string(data)

	sample := content
	truncated := false
	if len(sample) > p.sampleSize {
		sample = sample[:p.sampleSize]
		truncated = true
	}
	delimiter := SniffDelimiter(sample, truncated)

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &Result{Tasks: []domain.Task{}, Delimiter: delimiter}

	header, err := reader.Read()
	if err == io.EOF {
		return result, nil
	}
	if err != nil {
		return nil, errors.NewImportError(source, err)
	}
	columns := p.columns(header)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewImportError(source, err)
		}

		task, ok := p.rowTask(columns, header, row)
		if !ok {
			line, _ := reader.FieldPos(0)
			p.log.Debug().Int("line", line).Msg("skipping row without a title")
			result.Skipped++
			continue
		}
		result.Tasks = append(result.Tasks, task)
	}

	result.Imported = len(result.Tasks)
	return result, nil
}

// columns resolves every rule to the column indexes of its headers, in rule
// order. A header repeated in the file maps to its last column.
func (p *Parser) columns(header []string) map[Field][]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[normalizeHeader(name)] = i
	}

	columns := make(map[Field][]int, len(p.rules))
	for _, rule := range p.rules {
		for _, name := range rule.Headers {
			if i, ok := index[name]; ok {
				columns[rule.Field] = append(columns[rule.Field], i)
			}
		}
	}
	return columns
}

func (p *Parser) rowTask(columns map[Field][]int, header, row []string) (domain.Task, bool) {
	value := func(f Field) string {
		for _, i := range columns[f] {
			if v := cell(row, i); v != "" {
				return v
			}
		}
		return ""
	}

	title := value(FieldTitle)
	if title == "" {
		title = firstNonEmpty(row, len(header))
	}
	if title == "" {
		return domain.Task{}, false
	}

	task := domain.Task{
		ID:          uuid.New(),
		Text:        title,
		Description: value(FieldDescription),
		Course:      value(FieldCourse),
		Category:    domain.CategoryDated,
	}

	if raw := value(FieldDueDate); raw != "" {
		if due, ok := ParseDate(raw); ok {
			task.DueDate = &due
		} else {
			p.log.Debug().Str("value", raw).Str("task", title).Msg("unrecognised due date, importing undated")
		}
	}
	return task, true
}

// firstNonEmpty returns the first populated cell among the first n columns.
func firstNonEmpty(row []string, n int) string {
	for i := 0; i < len(row) && i < n; i++ {
		if v := strings.TrimSpace(row[i]); v != "" {
			return v
		}
	}
	return ""
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
