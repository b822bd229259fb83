// Package ledgerparser normalizes general-ledger exports (CSV) into
// TransactionRecords. It locates the header row, maps the columns it knows
// (code, description, date, debit/credit, single amount, one column per year)
// and collects total rows separately so they can be checked against the
// computed report.
package ledgerparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"fjacquet/gl-analyzer/internal/dateutils"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"
	"fjacquet/gl-analyzer/internal/parsererror"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

const (
	parserName = "ledger"

	// UnknownCode is assigned to lines with an amount and a description but no code.
	UnknownCode = "9999"

	unknownDescription = "Onbekend"
	headerScanRows     = 25
	metadataScanRows   = 20
)

var (
	headerKeywords = []string{
		"grootboek", "code", "nr", "omschrijving", "naam", "balans", "bedrag", "debet", "credit", "eindsaldo",
		"description", "debit", "amount", "account",
	}

	yearPattern     = regexp.MustCompile(`\b(20\d{2})\b`)
	combinedPattern = regexp.MustCompile(`^(\d{3,})\s*-\s*(.*)`)
	leadingCode     = regexp.MustCompile(`^(\d{4})\s`)
	metaYear        = regexp.MustCompile(`(?:boekjaar|jaar|year|bookyear)\s*:?\s*(\d{4})`)
	metaPeriod      = regexp.MustCompile(`(?:periode|period)\s*:?\s*(\d{1,2}(?:\s*-\s*\d{1,2})?|\d{4})`)
)

// Metadata holds the bookkeeping year and period announced above the header.
type Metadata struct {
	Year   string `json:"year,omitempty" yaml:"year,omitempty"`
	Period string `json:"period,omitempty" yaml:"period,omitempty"`
}

// Result is the outcome of parsing one ledger file.
type Result struct {
	Records []models.TransactionRecord `json:"records" yaml:"records"`
	Totals  []models.ValidationTotal   `json:"totals" yaml:"totals"`
	Meta    Metadata                   `json:"meta" yaml:"meta"`
	// Years lists the years of multi-year columns, newest first.
	Years []string `json:"years,omitempty" yaml:"years,omitempty"`
}

// Parser reads ledger exports.
type Parser struct {
	logger    logging.Logger
	delimiter rune
}

// New creates a Parser splitting fields on delimiter.
func New(logger logging.Logger, delimiter rune) *Parser {
	if logger == nil {
		logger = logging.Nop()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Parser{logger: logger, delimiter: delimiter}
}

// ParseFile parses the ledger file at path.
func (p *Parser) ParseFile(path string) (Result, error) {
	p.logger.Info("Parsing ledger file",
		logging.F(logging.FieldInputFile, path),
		logging.F(logging.FieldDelimiter, string(p.delimiter)))

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("error opening ledger file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	res, err := p.Parse(f)
	if err != nil {
		var ife *parsererror.InvalidFormatError
		if errors.As(err, &ife) {
			ife.FilePath = path
		}
		return Result{}, err
	}
	return res, nil
}

// Parse reads a ledger export from r.
func (p *Parser) Parse(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.Comma = p.delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("error reading ledger CSV: %w", err)
	}
	if len(rows) == 0 {
		return Result{}, parsererror.ErrNoRecords
	}
	if len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	var res Result
	if isNormalized(rows[0]) {
		res, err = parseNormalized(rows)
	} else {
		res, err = p.parseExport(rows)
	}
	if err != nil {
		return Result{}, err
	}
	if len(res.Records) == 0 {
		return Result{}, parsererror.ErrNoRecords
	}

	p.logger.Info("Parsed ledger",
		logging.F(logging.FieldCount, len(res.Records)),
		logging.F("totals", len(res.Totals)))
	return res, nil
}

// normalizedHeader is the column layout written by WriteFile.
var normalizedHeader = []string{"id", "date", "account_code", "description", "debit", "credit"}

func isNormalized(header []string) bool {
	if len(header) != len(normalizedHeader) {
		return false
	}
	for i, h := range header {
		if strings.TrimSpace(h) != normalizedHeader[i] {
			return false
		}
	}
	return true
}

type rowsReader struct {
	rows [][]string
	pos  int
}

func (r *rowsReader) Read() ([]string, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

func (r *rowsReader) ReadAll() ([][]string, error) {
	rest := r.rows[r.pos:]
	r.pos = len(r.rows)
	return rest, nil
}

func parseNormalized(rows [][]string) (Result, error) {
	var records []models.TransactionRecord
	if err := gocsv.UnmarshalCSV(&rowsReader{rows: rows}, &records); err != nil {
		return Result{}, fmt.Errorf("error parsing normalized ledger: %w", err)
	}
	return Result{Records: records}, nil
}

type yearColumn struct {
	index int
	year  string
}

type columns struct {
	code, desc, date   int
	debit, credit, amt int
	years              []yearColumn
}

func findColumns(header []string) columns {
	lower := make([]string, len(header))
	for i, h := range header {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}
	find := func(keys ...string) int {
		for i, h := range lower {
			if containsAny(h, keys...) {
				return i
			}
		}
		return -1
	}

	c := columns{
		code:   find("grootboek", "code", "nr", "account"),
		desc:   find("omschrijving", "naam", "description"),
		date:   find("datum", "date"),
		debit:  find("debet", "debit"),
		credit: find("credit"),
		amt:    -1,
	}
	if c.code == -1 && c.desc != -1 {
		c.code = c.desc
	}
	if c.desc == -1 {
		c.desc = 0
	}
	if c.debit == -1 || c.credit == -1 {
		c.amt = find("bedrag", "amount", "saldo")
	}
	for i, h := range lower {
		if m := yearPattern.FindStringSubmatch(h); m != nil {
			c.years = append(c.years, yearColumn{index: i, year: m[1]})
		}
	}
	return c
}

func containsAny(s string, keys ...string) bool {
	for _, k := range keys {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func joinLower(row []string) string {
	return strings.ToLower(strings.Join(row, " "))
}

// findHeader returns the index of the most header-like row among the first
// rows, or -1. Year cells count towards the score.
func findHeader(rows [][]string) int {
	best, bestScore := -1, 0
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		line := joinLower(rows[i])
		if strings.Contains(line, "boekjaar") && !strings.Contains(line, "bedrag") {
			continue
		}
		score := 0
		for _, k := range headerKeywords {
			if strings.Contains(line, k) {
				score++
			}
		}
		for _, cell := range rows[i] {
			if yearPattern.MatchString(cell) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func scanMetadata(rows [][]string) Metadata {
	var meta Metadata
	for i := 0; i < len(rows) && i < metadataScanRows; i++ {
		line := joinLower(rows[i])
		if m := metaYear.FindStringSubmatch(line); m != nil {
			meta.Year = m[1]
		}
		if m := metaPeriod.FindStringSubmatch(line); m != nil {
			meta.Period = m[1]
		}
	}
	return meta
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func amount(row []string, idx int) decimal.Decimal {
	v, _ := ParseAmount(cell(row, idx))
	return v
}

func (p *Parser) parseExport(rows [][]string) (Result, error) {
	headerIdx := findHeader(rows)
	if headerIdx == -1 {
		return Result{}, &parsererror.InvalidFormatError{
			ExpectedFormat:       "ledger export with a header row",
			ActualContentSnippet: strings.Join(rows[0], string(p.delimiter)),
			Msg:                  "no header row found",
		}
	}

	cols := findColumns(rows[headerIdx])
	res := Result{Meta: scanMetadata(rows)}
	years := make(map[string]struct{})

	p.logger.Debug("Detected ledger header",
		logging.F(logging.FieldLine, headerIdx+1),
		logging.F("year_columns", len(cols.years)))

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		line := joinLower(row)

		if strings.Contains(line, "totaal") || strings.Contains(line, "total") {
			res.Totals = append(res.Totals, totalsOf(row, cols)...)
			continue
		}

		switch {
		case len(cols.years) > 0:
			for _, yc := range cols.years {
				val := amount(row, yc.index)
				if val.IsZero() {
					continue
				}
				if rec, ok := p.buildRecord(row, cols, i, yc.year, val, decimal.Zero); ok {
					res.Records = append(res.Records, rec)
					years[yc.year] = struct{}{}
				}
			}
		case cols.debit != -1 && cols.credit != -1:
			if rec, ok := p.buildRecord(row, cols, i, "", amount(row, cols.debit), amount(row, cols.credit)); ok {
				res.Records = append(res.Records, rec)
			}
		case cols.amt != -1:
			if rec, ok := p.buildRecord(row, cols, i, "", amount(row, cols.amt), decimal.Zero); ok {
				res.Records = append(res.Records, rec)
			}
		}
	}

	for y := range years {
		res.Years = append(res.Years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(res.Years)))
	return res, nil
}

func totalsOf(row []string, cols columns) []models.ValidationTotal {
	name := cell(row, cols.desc)
	if name == "" {
		name = cell(row, cols.code)
	}
	if name == "" {
		name = "Totaal"
	}

	if len(cols.years) > 0 {
		var out []models.ValidationTotal
		for _, yc := range cols.years {
			if val := amount(row, yc.index); !val.IsZero() {
				out = append(out, models.ValidationTotal{Name: name, Value: val, Year: yc.year})
			}
		}
		return out
	}

	var val decimal.Decimal
	switch {
	case cols.debit != -1 && cols.credit != -1:
		val = amount(row, cols.debit).Sub(amount(row, cols.credit))
	case cols.amt != -1:
		val = amount(row, cols.amt)
	default:
		for _, c := range row {
			if v, ok := ParseAmount(c); ok {
				val = v
				break
			}
		}
	}
	if val.IsZero() {
		return nil
	}
	return []models.ValidationTotal{{Name: name, Value: val}}
}

// buildRecord turns one data line into a record. debit and credit may be
// negative; the builder moves them to the opposite side. With a year, the
// line comes from a year column and is dated on the last day of that year.
func (p *Parser) buildRecord(row []string, cols columns, index int, year string, debit, credit decimal.Decimal) (models.TransactionRecord, bool) {
	if debit.IsZero() && credit.IsZero() {
		return models.TransactionRecord{}, false
	}

	code, desc := splitCodeAndDescription(cell(row, cols.code), cell(row, cols.desc))
	if code == "" && desc != unknownDescription {
		lower := strings.ToLower(desc)
		if !strings.Contains(lower, "totaal") && !strings.Contains(lower, "balance") {
			code = UnknownCode
		}
	}
	if code == "" {
		return models.TransactionRecord{}, false
	}

	date := ""
	if year != "" {
		date = dateutils.YearEnd(year)
	} else if raw := cell(row, cols.date); raw != "" {
		parsed, err := dateutils.ParseLedgerDate(raw)
		if err != nil {
			p.logger.WithError(&parsererror.ParseError{Parser: parserName, Field: "date", Value: raw, Err: err}).
				Debug("Keeping line without date", logging.F(logging.FieldLine, index+1))
		}
		date = parsed
	}

	id := fmt.Sprintf("row-%d-single", index)
	if year != "" {
		id = fmt.Sprintf("row-%d-%s", index, year)
	}

	rec, err := models.NewRecordBuilder().
		WithID(id).
		WithDate(date).
		WithAccountCode(code).
		WithDescription(desc).
		WithDebit(debit).
		WithCredit(credit).
		Build()
	if err != nil {
		p.logger.WithError(err).Warn("Skipping ledger line", logging.F(logging.FieldLine, index+1))
		return models.TransactionRecord{}, false
	}
	return rec, true
}

// splitCodeAndDescription resolves "NNNN - Description" notations in either
// column and reduces the code to its digits. Both arguments may be the same
// cell when the export has no separate code column.
func splitCodeAndDescription(code, desc string) (string, string) {
	if desc == "" {
		desc = unknownDescription
	}

	if m := combinedPattern.FindStringSubmatch(code); m != nil {
		if desc == unknownDescription || desc == code {
			desc = m[2]
		}
		code = m[1]
	} else if m := combinedPattern.FindStringSubmatch(desc); m != nil {
		code, desc = m[1], m[2]
	}

	if code == "" {
		if m := leadingCode.FindStringSubmatch(desc); m != nil {
			code = m[1]
		}
	}
	return models.DigitsOnly(code), desc
}
