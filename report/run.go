package report

import (
	"bytes"
	"sort"
	"text/template"
	"time"

	"github.com/rustyeddy/txledger/journal"
	"github.com/rustyeddy/txledger/money"
	"github.com/shopspring/decimal"
)

type statusCount struct {
	Status string
	Count  int
}

type runView struct {
	journal.Run
	Statuses []statusCount
	Balances []journal.BalanceEntry
}

var runOrgFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return money.Format(d) },
	"stamp": func(t time.Time) string { return t.UTC().Format("2006-01-02 Mon 15:04") },
}

var runOrgTmpl = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

// FormatRunOrg renders a journaled run as an Org-mode entry.
func FormatRunOrg(run journal.Run, counts map[string]int, balances []journal.BalanceEntry) (string, error) {
	v := runView{Run: run, Balances: balances}
	for s, n := range counts {
		v.Statuses = append(v.Statuses, statusCount{s, n})
	}
	sort.Slice(v.Statuses, func(i, j int) bool { return v.Statuses[i].Status < v.Statuses[j].Status })

	buf := new(bytes.Buffer)
	if err := runOrgTmpl.Execute(buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const RunOrgTemplate = `* RUN: {{.Source}}
:PROPERTIES:
:RUN_ID:     {{.RunID}}
:SOURCE:     {{.Source}}
:STARTED:    [{{stamp .Started}}]
:FINISHED:   [{{stamp .Finished}}]
:LINES:      {{.Lines}}
:APPLIED:    {{.Applied}}
:REJECTED:   {{.Rejected}}
:MALFORMED:  {{.Malformed}}
:CLIENTS:    {{.Clients}}
:END:

** Outcomes
{{range .Statuses}}- {{.Status}}: {{.Count}}
{{end}}
** Balances
| client | available | held | total | locked |
|--------+-----------+------+-------+--------|
{{range .Balances}}| {{.ClientID}} | {{money .Available}} | {{money .Held}} | {{money .Total}} | {{.Locked}} |
{{end}}`
