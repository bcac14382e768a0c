// Package export writes a session's loan records to an xlsx workbook and reads
// it back for the console preview.
package export

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"loan-refinance/amortization"
	"loan-refinance/config"
	"loan-refinance/domain"
)

var (
	CurrentTermsHeader = []any{
		"Nome", "Saldo Devedor", "Parcelas restantes", "Taxa de juros atual (%)", "Prestação atual (R$)",
	}
	ProposedTermsHeader = []any{
		"Nome", "Saldo Devedor (R$)", "Parcelas restantes", "Nova taxa de juros (%)", "Nova Prestação (R$)",
	}
)

const defaultSheet = "Sheet1"

type Exporter struct {
	path        string
	sheet       string
	previewRows int
	logger      *zap.Logger
}

func NewExporter(cfg config.ExportConfig, logger *zap.Logger) *Exporter {
	return &Exporter{
		path:        cfg.Path,
		sheet:       cfg.Sheet,
		previewRows: cfg.PreviewRows,
		logger:      logger,
	}
}

// Export writes the current-terms block, one blank row and the proposed-terms
// block to a single sheet, overwriting the configured file. It returns the
// absolute path of the file.
func (e *Exporter) Export(records iter.Seq[domain.LoanRecord]) (string, error) {
	path, err := filepath.Abs(e.path)
	if err != nil {
		return "", &ExportError{Path: e.path, Err: err}
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("failed to close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName(defaultSheet, e.sheet); err != nil {
		return "", &ExportError{Path: path, Err: err}
	}

	rows, headers := buildRows(records)
	for i, row := range rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", &ExportError{Path: path, Err: err}
		}
		if err := f.SetSheetRow(e.sheet, cell, &row); err != nil {
			return "", &ExportError{Path: path, Err: err}
		}
	}

	if err := e.styleHeaders(f, headers); err != nil {
		return "", &ExportError{Path: path, Err: err}
	}

	if err := f.SaveAs(path); err != nil {
		return "", &ExportError{Path: path, Err: err}
	}

	e.logger.Info("spreadsheet exported", zap.String("path", path), zap.Int("rows", len(rows)))
	return path, nil
}

// buildRows lays out both blocks; a nil row is the blank separator. The
// second result holds the 1-based row numbers of the two headers.
func buildRows(records iter.Seq[domain.LoanRecord]) ([][]any, []int) {
	current := [][]any{CurrentTermsHeader}
	proposed := [][]any{ProposedTermsHeader}

	for r := range records {
		current = append(current, []any{
			r.Name(),
			r.Principal().InexactFloat64(),
			r.RemainingTerm(),
			amortization.RoundPercent(decimal.NewFromFloat(r.InferredCurrentRate())).InexactFloat64(),
			amortization.RoundMoney(r.CurrentPayment()).InexactFloat64(),
		})
		proposed = append(proposed, []any{
			r.Name(),
			r.Principal().InexactFloat64(),
			r.RemainingTerm(),
			amortization.RoundPercent(r.ProposedRate()).InexactFloat64(),
			amortization.RoundMoney(r.ProposedPayment()).InexactFloat64(),
		})
	}

	headers := []int{1, len(current) + 2}
	rows := append(current, nil)
	return append(rows, proposed...), headers
}

func (e *Exporter) styleHeaders(f *excelize.File, headers []int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetColWidth(e.sheet, "A", "E", 26); err != nil {
		return err
	}

	for _, row := range headers {
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(CurrentTermsHeader), row)
		if err := f.SetCellStyle(e.sheet, first, last, style); err != nil {
			return err
		}
	}
	return nil
}

// Preview is the read-back of an exported sheet.
type Preview struct {
	Rows         [][]string
	SkippedBlank bool
}

// Preview re-reads up to the configured number of non-blank rows of path.
func (e *Exporter) Preview(path string) (Preview, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Preview{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(e.sheet)
	if err != nil {
		return Preview{}, fmt.Errorf("failed to read sheet %q: %w", e.sheet, err)
	}
	if len(rows) == 0 {
		return Preview{}, errors.New("sheet is empty")
	}

	var p Preview
	for _, row := range rows {
		if len(p.Rows) >= e.previewRows {
			break
		}
		if isBlank(row) {
			p.SkippedBlank = true
			continue
		}
		p.Rows = append(p.Rows, row)
	}
	return p, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
