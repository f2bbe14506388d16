// Package report renders the final client balances.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rustyeddy/txledger/ledger"
	"github.com/rustyeddy/txledger/money"
)

var Header = []string{"client", "available", "held", "total", "locked"}

// Format names an output rendering.
type Format string

const (
	FormatCSV Format = "csv"
	FormatOrg Format = "org"
)

// Write renders balances to w in the given format.
func Write(w io.Writer, format Format, balances []ledger.Balance) error {
	switch format {
	case "", FormatCSV:
		return WriteCSV(w, balances)
	case FormatOrg:
		_, err := io.WriteString(w, FormatOrgTable(balances))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteCSV writes the header and one row per client.
func WriteCSV(w io.Writer, balances []ledger.Balance) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, b := range balances {
		if err := cw.Write(row(b)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatOrgTable renders balances as an Org-mode table.
func FormatOrgTable(balances []ledger.Balance) string {
	rows := [][]string{Header}
	for _, b := range balances {
		rows = append(rows, row(b))
	}

	widths := make([]int, len(Header))
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var b strings.Builder
	for n, r := range rows {
		b.WriteString("|")
		for i, cell := range r {
			// numbers right aligned, as org does
			if n > 0 && i > 0 && i < len(r)-1 {
				fmt.Fprintf(&b, " %*s |", widths[i], cell)
			} else {
				fmt.Fprintf(&b, " %-*s |", widths[i], cell)
			}
		}
		b.WriteString("\n")
		if n == 0 {
			b.WriteString("|")
			for i, w := range widths {
				b.WriteString(strings.Repeat("-", w+2))
				if i < len(widths)-1 {
					b.WriteString("+")
				}
			}
			b.WriteString("|\n")
		}
	}
	return b.String()
}

func row(b ledger.Balance) []string {
	return []string{
		strconv.FormatUint(uint64(b.ClientID), 10),
		money.Format(b.Available),
		money.Format(b.Held),
		money.Format(b.Total),
		strconv.FormatBool(b.Locked),
	}
}
