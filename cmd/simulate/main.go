package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/rateio-app/rateio/internal/allocation"
	"github.com/rateio-app/rateio/internal/currency"
	"github.com/rateio-app/rateio/internal/entity"
	"github.com/rateio-app/rateio/internal/projection"
)

// simulate replays an allocation over a classified record from a JSON file,
// useful for checking a rateio without the HTTP server.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	depositsFlag := flag.String("deposits", "", "semicolon-separated deposit amounts, pt-BR or plain (e.g. \"10.000,00;5000\")")
	feePercent := flag.Float64("fee-percent", 0, "contractual fee percentage over the net base (0 disables)")
	flag.Parse()

	if flag.NArg() < 1 {
		logger.Error("usage: simulate [flags] <record.json>")
		os.Exit(2)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		logger.Error("read record", "error", err)
		os.Exit(1)
	}
	var rec entity.ExtractedRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		logger.Error("decode record", "error", err)
		os.Exit(1)
	}

	var deposits []entity.Deposit
	if *depositsFlag != "" {
		for _, part := range strings.Split(*depositsFlag, ";") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			deposits = append(deposits, entity.Deposit{
				ID:     uuid.NewString(),
				Amount: currency.Parse(part),
			})
		}
	}

	fee := projection.DefaultFeeConfig(rec.Discounts)
	if *feePercent > 0 {
		fee.Enabled = true
		fee.Percent = *feePercent
	}

	items := projection.Build(rec, fee, nil)
	pool := allocation.TotalDeposits(deposits)
	result := allocation.Compute(items, pool)
	totals := allocation.Summarize(items, result, pool)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DESCRIÇÃO\tVALOR ORIGINAL\tPAGO\tRESTANTE")
	for _, item := range items {
		entry := result[item.ID]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			item.Description,
			currency.Format(item.FaceValue),
			currency.Format(entry.Paid),
			currency.Format(entry.Remaining),
		)
	}
	fmt.Fprintln(w, "\t\t\t")
	fmt.Fprintf(w, "TOTAL\t%s\t%s\t%s\n",
		currency.Format(totals.TotalDebt),
		currency.Format(totals.TotalPaid),
		currency.Format(totals.TotalRemaining),
	)
	fmt.Fprintf(w, "DEPÓSITOS\t%s\t\tSALDO %s\n",
		currency.Format(pool),
		currency.Format(totals.Balance),
	)
	w.Flush()
}
