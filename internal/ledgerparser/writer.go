package ledgerparser

import (
	"fjacquet/gl-analyzer/internal/common"
	"fjacquet/gl-analyzer/internal/models"
)

// WriteFile writes records in the normalized layout that Parse reads back
// with ids intact.
func (p *Parser) WriteFile(records []models.TransactionRecord, path string) error {
	return common.WriteCSVFile(records, path, p.delimiter, p.logger)
}
