package parsererror

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	_, inner := strconv.Atoi("x")
	err := &ParseError{Parser: "ledger", Field: "date", Value: "31/31/2024", Err: inner}

	assert.Equal(t, "ledger: failed to parse date='31/31/2024': "+inner.Error(), err.Error())
	assert.ErrorIs(t, fmt.Errorf("row 3: %w", err), inner)

	var pe *ParseError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &pe))
	assert.Equal(t, "date", pe.Field)
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{FilePath: "a.csv", ExpectedFormat: "ledger export", Msg: "no header row"}
	assert.Equal(t, "invalid format in file 'a.csv': no header row. Expected: ledger export", err.Error())

	err.ActualContentSnippet = "foo;bar"
	assert.Contains(t, err.Error(), "Content snippet: 'foo;bar'")
}

func TestErrNoRecords(t *testing.T) {
	assert.ErrorIs(t, fmt.Errorf("parse a.csv: %w", ErrNoRecords), ErrNoRecords)
}
