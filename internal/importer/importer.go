package importer

import (
	"io"

	"github.com/mfreitas/tally/internal/ledger"
)

type Format string

const (
	FormatStatement Format = "statement"
)

type Importer interface {
	Parse(r io.Reader) ([]ledger.TransactionParams, error)
}
