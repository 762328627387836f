// Package csvledger reads ledger CSV files: the app's own export plus the
// bank statement layouts in profiles. The format is detected from the header.
package csvledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/finwise/internal/encoding"
	"github.com/MrJamesThe3rd/finwise/internal/transaction"
)

// Entry is one parsed row. For bank statements money going out has no
// category yet; Label is empty and Description keeps the bank's text.
type Entry struct {
	Date        time.Time
	Amount      int64
	Type        transaction.Type
	Label       string
	PaidOnTime  bool
	Description string
}

type Result struct {
	Format  string
	Charset enc.Charset
	Entries []Entry
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

var delimiters = []rune{';', ','}

func (p *Parser) Parse(r io.Reader) (*Result, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	for _, delim := range delimiters {
		rows, err := readRows(content, delim)
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		entries, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx)
		if err != nil {
			return nil, err
		}

		return &Result{Format: profile.Name, Charset: charset, Entries: entries}, nil
	}

	return nil, fmt.Errorf("no known ledger format found: expected a header like date,type,amount,label")
}

func readRows(content []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps normalized column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := normalize(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a readable date or amount, which is how
// statement footers and balance lines look. headerRowNum is the 0-based index
// of the header, so the first data row is line headerRowNum+2 of the file.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Entry, error) {
	var entries []Entry

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		date, ok := parseDate(row, cols[p.DateCol], p.DateLayouts)
		if !ok {
			continue
		}

		desc := cellValue(row, cols[p.DescCol])
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		entry := Entry{Date: date, Description: desc}

		switch p.AmountMode {
		case amountTyped:
			typed, err := parseTyped(p, cols, row)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", rowNum, err)
			}

			if typed == nil {
				continue
			}

			entry.Amount, entry.Type, entry.PaidOnTime = typed.amount, typed.kind, typed.paid
			entry.Label = desc
		case amountSigned:
			cents, ok := signedAmount(row, cols[p.AmountCol], p.Numbers)
			if !ok {
				continue
			}

			entry.Amount, entry.Type, entry.Label = bankSide(cents, desc)
		case amountSplit:
			cents, ok := splitAmount(row, cols[p.DebitCol], cols[p.CreditCol], p.Numbers)
			if !ok {
				continue
			}

			entry.Amount, entry.Type, entry.Label = bankSide(cents, desc)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// bankSide turns a signed bank amount into a ledger amount, type and label.
// Incoming money is labelled with the bank description as its source.
func bankSide(cents int64, desc string) (int64, transaction.Type, string) {
	if cents < 0 {
		return -cents, transaction.TypeDebit, ""
	}

	return cents, transaction.TypeIncome, desc
}

type typedAmount struct {
	amount int64
	kind   transaction.Type
	paid   bool
}

func parseTyped(p *Profile, cols colIndex, row []string) (*typedAmount, error) {
	raw := cellValue(row, cols[p.AmountCol])
	if raw == "" {
		return nil, nil
	}

	cents, err := parseAmount(raw, p.Numbers)
	if err != nil {
		return nil, nil
	}

	if cents <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %q", raw)
	}

	kind := transaction.Type(strings.ToLower(cellValue(row, cols[p.TypeCol])))

	switch kind {
	case transaction.TypeDebit, transaction.TypeIncome, transaction.TypeLoanTaken, transaction.TypeLoanRepayment:
	case "expense":
		kind = transaction.TypeDebit
	default:
		return nil, fmt.Errorf("unknown transaction type %q", kind)
	}

	paid := false

	if idx, ok := cols[p.PaidCol]; ok {
		if s := cellValue(row, idx); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, fmt.Errorf("paid_on_time must be true or false, got %q", s)
			}

			paid = b
		}
	}

	return &typedAmount{amount: cents, kind: kind, paid: paid}, nil
}

func parseDate(row []string, idx int, layouts []string) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func signedAmount(row []string, idx int, style numberStyle) (int64, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, false
	}

	cents, err := parseAmount(s, style)
	if err != nil || cents == 0 {
		return 0, false
	}

	return cents, true
}

// splitAmount reads separate debit and credit columns into one signed amount.
func splitAmount(row []string, debitIdx, creditIdx int, style numberStyle) (int64, bool) {
	if cents, ok := signedAmount(row, debitIdx, style); ok {
		return -abs(cents), true
	}

	if cents, ok := signedAmount(row, creditIdx, style); ok {
		return abs(cents), true
	}

	return 0, false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
