package ledgerparser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"
	"fjacquet/gl-analyzer/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func parse(t *testing.T, delimiter rune, content string) Result {
	t.Helper()
	res, err := New(logging.Nop(), delimiter).Parse(strings.NewReader(content))
	require.NoError(t, err)
	return res
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1.234,56", "1234.56", true},
		{"1,234.56", "1234.56", true},
		{"12,5", "12.5", true},
		{"12.5", "12.5", true},
		{"150,00-", "-150", true},
		{"-80", "-80", true},
		{"€ 1.000,00", "1000", true},
		{"", "0", false},
		{"n.v.t.", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, got.Equal(d(tt.want)), "got %s", got)
		})
	}
}

func TestParse_SplitColumns(t *testing.T) {
	content := "Administratie: Demo BV\n" +
		"Boekjaar: 2024\n" +
		"Grootboekrekening;Omschrijving;Datum;Debet;Credit\n" +
		"8000;Omzet hoog;31-01-2024;;10.000,00\n" +
		"4000;Brutoloon;2024-01-31;5.000,00;\n" +
		"4100;Huur;15.02.2024;-200,00;\n" +
		"4200;Leeg;2024-02-01;0;0\n" +
		"Totaal activa;;;40.200,00;\n"

	res := parse(t, ';', content)
	assert.Equal(t, "2024", res.Meta.Year)
	require.Len(t, res.Records, 3)

	sales := res.Records[0]
	assert.Equal(t, "8000", sales.AccountCode)
	assert.Equal(t, "Omzet hoog", sales.Description)
	assert.Equal(t, "2024-01-31", sales.Date)
	assert.True(t, sales.Credit.Equal(d("10000")))
	assert.True(t, sales.Debit.IsZero())
	assert.Equal(t, "row-3-single", sales.ID)

	refund := res.Records[2]
	assert.Equal(t, "2024-02-15", refund.Date)
	assert.True(t, refund.Credit.Equal(d("200")), "negative debit moves to credit")
	assert.True(t, refund.Debit.IsZero())

	require.Len(t, res.Totals, 1)
	assert.Equal(t, "Totaal activa", res.Totals[0].Name, "code column names the total when the description is empty")
	assert.True(t, res.Totals[0].Value.Equal(d("40200")))
}

func TestParse_SingleAmountColumn(t *testing.T) {
	content := "Datum,Code,Omschrijving,Bedrag\n" +
		"2024-03-01,7000 - Inkoop,,\"1,234.50\"\n" +
		"2024-03-01,,8100 - Abonnementen,-300\n" +
		"2024-03-01,,Diverse,12\n" +
		"2024-03-01,,0400 Kas,50\n" +
		"2024-03-01,,,99\n"

	res := parse(t, ',', content)
	require.Len(t, res.Records, 4)

	assert.Equal(t, "7000", res.Records[0].AccountCode)
	assert.Equal(t, "Inkoop", res.Records[0].Description)
	assert.True(t, res.Records[0].Debit.Equal(d("1234.50")))

	assert.Equal(t, "8100", res.Records[1].AccountCode)
	assert.Equal(t, "Abonnementen", res.Records[1].Description)
	assert.True(t, res.Records[1].Credit.Equal(d("300")))

	assert.Equal(t, UnknownCode, res.Records[2].AccountCode)
	assert.Equal(t, "0400", res.Records[3].AccountCode, "leading code in description")
}

func TestParse_YearColumns(t *testing.T) {
	content := "Grootboek;Omschrijving;Eindsaldo 2023;Eindsaldo 2024\n" +
		"1100 - Bank;;15000;25000\n" +
		"0500;Aandelenkapitaal;-18000;-18000\n" +
		"8000;Omzet;;-22000\n" +
		";Totaal activa;40000;40200\n"

	res := parse(t, ';', content)
	assert.Equal(t, []string{"2024", "2023"}, res.Years)
	require.Len(t, res.Records, 5)

	bank := res.Records[0]
	assert.Equal(t, "2023-12-31", bank.Date)
	assert.Equal(t, "Bank", bank.Description)
	assert.Equal(t, "row-1-2023", bank.ID)

	equity := res.Records[2]
	assert.True(t, equity.Credit.Equal(d("18000")))

	require.Len(t, res.Totals, 2)
	assert.Equal(t, "2023", res.Totals[0].Year)
	assert.Equal(t, "Totaal activa", res.Totals[0].Name)
	assert.True(t, res.Totals[1].Value.Equal(d("40200")))
}

func TestParse_ExcelSerialDate(t *testing.T) {
	res := parse(t, ',', "date,account,description,debit,credit\n45366,4500,Kantoor,10,\n")
	require.Len(t, res.Records, 1)
	assert.Equal(t, "2024-03-15", res.Records[0].Date)
}

func TestParse_UnparseableDateKeepsLine(t *testing.T) {
	res := parse(t, ',', "date,account,description,debit,credit\nsoon,4500,Kantoor,10,\n")
	require.Len(t, res.Records, 1)
	assert.Empty(t, res.Records[0].Date)
}

func TestParse_Errors(t *testing.T) {
	p := New(logging.Nop(), ',')

	_, err := p.Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, parsererror.ErrNoRecords)

	_, err = p.Parse(strings.NewReader("Grootboek,Omschrijving,Bedrag\n8000,Omzet,0\n"))
	assert.ErrorIs(t, err, parsererror.ErrNoRecords)

	_, err = p.Parse(strings.NewReader("foo,bar\n1,2\n"))
	var ife *parsererror.InvalidFormatError
	assert.True(t, errors.As(err, &ife), "got %v", err)
}

func TestWriteFileRoundTrip(t *testing.T) {
	p := New(logging.Nop(), ';')
	path := filepath.Join(t.TempDir(), "ledger.csv")
	records := []models.TransactionRecord{
		{ID: "a", Date: "2024-01-31", AccountCode: "8000", Description: "Omzet; hoog", Debit: decimal.Zero, Credit: d("10000.50")},
		{ID: "b", Date: "", AccountCode: "4000", Description: "Brutoloon", Debit: d("5000"), Credit: decimal.Zero},
	}
	require.NoError(t, p.WriteFile(records, path))

	res, err := p.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	for i := range records {
		assert.Equal(t, records[i].ID, res.Records[i].ID)
		assert.Equal(t, records[i].Description, res.Records[i].Description)
		assert.True(t, records[i].NetAmount().Equal(res.Records[i].NetAmount()))
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := New(nil, ',').ParseFile(filepath.Join(t.TempDir(), "none.csv"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
