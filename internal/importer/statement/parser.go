// Package statement parses generic ledger statement CSVs into transaction
// params. The expected layout is a header row naming at least a date and an
// amount column; type, category and description columns are optional. Rows
// with no parseable date are skipped as preamble or footer noise.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/mfreitas/tally/internal/encoding"
	"github.com/mfreitas/tally/internal/ledger"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// columnAliases maps the canonical column roles to accepted header names.
var columnAliases = map[string][]string{
	"date":        {"date", "data", "transaction date"},
	"amount":      {"amount", "value", "valor", "montante"},
	"type":        {"type", "tipo"},
	"category":    {"category", "categoria"},
	"description": {"description", "descricao", "descrição", "details"},
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
}

func (p *Parser) Parse(r io.Reader) ([]ledger.TransactionParams, error) {
	utf8r, err := enc.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	rows, err := readRows(string(raw))
	if err != nil {
		return nil, err
	}

	cols, headerIdx := detectHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no header row found: expected at least date and amount columns")
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// readRows parses the CSV, retrying with a semicolon delimiter when the file
// does not look comma-separated.
func readRows(content string) ([][]string, error) {
	for _, comma := range []rune{',', ';'} {
		reader := csv.NewReader(strings.NewReader(content))
		reader.Comma = comma
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if len(rows) > 0 && len(rows[0]) > 1 {
			return rows, nil
		}
	}

	return nil, fmt.Errorf("read csv: no delimited columns found")
}

// colIndex maps column roles to their index in the row.
type colIndex map[string]int

func detectHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			for role, aliases := range columnAliases {
				if _, taken := cols[role]; taken {
					continue
				}

				for _, alias := range aliases {
					if name == alias {
						cols[role] = i
						break
					}
				}
			}
		}

		_, hasDate := cols["date"]
		_, hasAmount := cols["amount"]

		if hasDate && hasAmount {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]ledger.TransactionParams, error) {
	var params []ledger.TransactionParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		date, ok := parseDate(cellValue(row, cols, "date"))
		if !ok {
			continue
		}

		amount, err := parseAmount(cellValue(row, cols, "amount"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount: %w", rowNum, err)
		}

		txType := ledger.Type(strings.ToLower(cellValue(row, cols, "type")))
		if txType != ledger.TypeIncome && txType != ledger.TypeExpense {
			// No usable type column: infer from the amount sign.
			txType = ledger.TypeIncome
			if amount.IsNegative() {
				txType = ledger.TypeExpense
			}
		}

		params = append(params, ledger.TransactionParams{
			Amount:      amount.Abs(),
			Type:        txType,
			Category:    cellValue(row, cols, "category"),
			Description: cellValue(row, cols, "description"),
			Date:        date,
		})
	}

	return params, nil
}

func cellValue(row []string, cols colIndex, role string) string {
	idx, ok := cols[role]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount accepts plain ("1234.56"), thousands-grouped ("1,234.56") and
// European ("1.234,56") formats.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(s, " ", "")

	if lastComma := strings.LastIndex(clean, ","); lastComma > strings.LastIndex(clean, ".") {
		// Comma is the decimal separator; dots group thousands.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}
