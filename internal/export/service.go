// Package export bundles a user's ledger as a CSV the importer can read back,
// plus a readable summary.
package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finwise/internal/analytics"
	"github.com/MrJamesThe3rd/finwise/internal/clock"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

const (
	ledgerFile  = "ledger.csv"
	summaryFile = "summary.txt"
)

var header = []string{"date", "type", "amount", "label", "paid_on_time"}

//go:generate mockgen -source=service.go -destination=ledger_mock.go -package=export
type LedgerReader interface {
	List(ctx context.Context, username string, filter transaction.ListFilter) ([]*transaction.Record, error)
}

type Service struct {
	ledger LedgerReader
	clock  clock.Clock
}

func NewService(ledger LedgerReader, clk clock.Clock) *Service {
	return &Service{ledger: ledger, clock: clk}
}

// Bundle is one export of a user's ledger.
type Bundle struct {
	Username    string
	Records     []*transaction.Record
	GeneratedAt time.Time
}

func (s *Service) Export(ctx context.Context, username string, filter transaction.ListFilter) (*Bundle, error) {
	records, err := s.ledger.List(ctx, username, filter)
	if err != nil {
		return nil, fmt.Errorf("listing ledger: %w", err)
	}

	return &Bundle{Username: username, Records: records, GeneratedAt: s.clock.Now()}, nil
}

// FileName is the suggested name of the archive.
func (b *Bundle) FileName() string {
	return fmt.Sprintf("finwise_%s_%s.zip", b.Username, b.GeneratedAt.Format("20060102"))
}

func formatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// WriteCSV writes records in the layout csvledger reads as "finwise".
func WriteCSV(w io.Writer, records []*transaction.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, rec := range records {
		paid := ""
		if r, ok := rec.Details.(transaction.LoanRepayment); ok {
			paid = strconv.FormatBool(r.PaidOnTime)
		}

		row := []string{
			rec.Date.Format(time.DateOnly),
			string(rec.Type()),
			formatCents(rec.Amount),
			rec.Label(),
			paid,
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %d: %w", rec.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func sign(t transaction.Type) string {
	switch t {
	case transaction.TypeIncome, transaction.TypeLoanTaken:
		return "+"
	}

	return "-"
}

// Summary lists every record and closes with the totals of the period the
// records span.
func (b *Bundle) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "FinWise ledger for %s, generated %s\n\n", b.Username, b.GeneratedAt.Format(time.DateOnly))

	if len(b.Records) == 0 {
		sb.WriteString("No transactions.\n")
		return sb.String()
	}

	first, last := clock.Date(b.Records[0].Date), clock.Date(b.Records[0].Date)

	for _, rec := range b.Records {
		d := clock.Date(rec.Date)
		if d.Before(first) {
			first = d
		}

		if d.After(last) {
			last = d
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s | %s\n",
			d.Format(time.DateOnly), rec.Label(), sign(rec.Type()), formatCents(rec.Amount), rec.Type())
	}

	totals := analytics.Summarize(b.Records, "", first, last)

	fmt.Fprintf(&sb, "\nPeriod: %s to %s\n", first.Format(time.DateOnly), last.Format(time.DateOnly))
	fmt.Fprintf(&sb, "Income: %s\n", formatCents(totals.Income.Total))
	fmt.Fprintf(&sb, "Expenses: %s\n", formatCents(totals.Expenses.Total))
	fmt.Fprintf(&sb, "Loans taken: %s\n", formatCents(totals.LoansTaken.Total))
	fmt.Fprintf(&sb, "Repayments: %s\n", formatCents(totals.Repayments.Total))
	fmt.Fprintf(&sb, "Net: %s\n", formatCents(totals.Net))

	return sb.String()
}

// WriteArchive writes a zip holding the ledger CSV and the summary.
func (b *Bundle) WriteArchive(w io.Writer) error {
	zw := zip.NewWriter(w)

	lf, err := zw.Create(ledgerFile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", ledgerFile, err)
	}

	if err := WriteCSV(lf, b.Records); err != nil {
		return err
	}

	sf, err := zw.Create(summaryFile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", summaryFile, err)
	}

	if _, err := io.WriteString(sf, b.Summary()); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	return zw.Close()
}
