package main

import (
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"

	"github.com/monirhq/bazar-ledger/internal"
)

type Params struct {
	Source string `descr:"Input source type" alts:"whatsapp-txt,snapshot-json"`
	Config string `descr:"Path to config file (default ~/.bazar-ledger/config.yaml)"`
	Sender string `descr:"Ledger owner; overrides the configured target sender"`
	Output string `descr:"Output format" alts:"table,json"`
	Month  string `descr:"Show only the billing cycle labeled YYYY-MM"`
	Export string `descr:"Write billing report to this xlsx file"`
	Db     string `descr:"Save the parsed snapshot to this sqlite file"`
	File   string `descr:"Path to the chat export or snapshot file" positional:"true"`
}

func main() {
	boa.NewCmdT[Params]("bazar-ledger").
		WithShort("Build a grocery ledger from an exported chat log").
		WithLong("Parses a WhatsApp-style chat export (English/Bengali, mixed numerals) into purchase transactions, deduplicates them, and reports 15th-to-14th billing cycles.").
		WithRunFunc(func(params *Params) {
			if err := run(params); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params) error {
	log := internal.NewLogger()

	cfg, err := loadConfig(params.Config)
	if err != nil {
		return err
	}
	if params.Sender != "" {
		cfg.TargetSender = params.Sender
	}

	sourceName := params.Source
	if sourceName == "" {
		sourceName = "whatsapp-txt"
	}
	source, err := internal.GetSource(sourceName)
	if err != nil {
		return err
	}

	result, err := source.Load(params.File, cfg)
	if err != nil {
		return fmt.Errorf("loading %s: %w", params.File, err)
	}

	bills, err := buildBills(result.Transactions, params.Month)
	if err != nil {
		return err
	}

	if params.Db != "" {
		store, err := internal.OpenStore(params.Db)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(result.Transactions); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		log.Info().Int("transactions", len(result.Transactions)).Str("db", params.Db).Msg("snapshot saved")
	}

	if params.Export != "" {
		if err := internal.ExportXLSX(params.Export, result.Transactions, bills); err != nil {
			return fmt.Errorf("exporting report: %w", err)
		}
		log.Info().Str("file", params.Export).Int("cycles", len(bills)).Msg("report exported")
	}

	if params.Output == "json" {
		return internal.PrintJSON(os.Stdout, result.Transactions, bills, result.Summary)
	}

	internal.PrintParseSummary(os.Stdout, result.Summary)
	internal.PrintParseErrors(os.Stdout, result.Errors)
	internal.PrintNeedsReview(os.Stdout, result.NeedsReview)
	for _, bill := range bills {
		internal.PrintMonthBill(os.Stdout, bill)
	}
	return nil
}

func loadConfig(path string) (*internal.Config, error) {
	if path != "" {
		return internal.LoadConfig(path)
	}
	defaultPath := internal.DefaultConfigPath()
	if defaultPath != "" {
		if _, err := os.Stat(defaultPath); err == nil {
			return internal.LoadConfig(defaultPath)
		}
	}
	return internal.NewDefaultConfig(), nil
}

// buildBills aggregates each billing cycle covered by the transactions,
// optionally narrowed to a single cycle key like "2024-02".
func buildBills(txs []internal.Transaction, monthKey string) ([]internal.MonthBill, error) {
	if len(txs) == 0 {
		return nil, nil
	}
	r := internal.RangeOf(txs)
	periods, err := internal.GeneratePeriods(r.Start, r.End)
	if err != nil {
		return nil, err
	}

	var bills []internal.MonthBill
	for _, p := range periods {
		if monthKey != "" && internal.PeriodKey(p) != monthKey {
			continue
		}
		summary := internal.GenerateBillingSummary(txs, p)
		bills = append(bills, summary.Month)
	}
	if monthKey != "" && len(bills) == 0 {
		return nil, fmt.Errorf("no billing cycle labeled %s in the data", monthKey)
	}
	return bills, nil
}
