package importer

import (
	"fmt"
	"io"

	"github.com/mfreitas/tally/internal/importer/statement"
	"github.com/mfreitas/tally/internal/ledger"
)

type Service struct {
	statementImporter Importer
}

func NewService() *Service {
	return &Service{
		statementImporter: statement.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]ledger.TransactionParams, error) {
	var imp Importer

	switch format {
	case FormatStatement:
		imp = s.statementImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return imp.Parse(r)
}
