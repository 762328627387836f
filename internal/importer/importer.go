package importer

import (
	"io"

	"github.com/MrJamesThe3rd/finwise/internal/importer/csvledger"
)

// DefaultCategory is used for bank debits no learned mapping recognises.
const DefaultCategory = "Other"

type Parser interface {
	Parse(r io.Reader) (*csvledger.Result, error)
}
