package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/underline83/trgb/internal/config"
	"github.com/underline83/trgb/internal/importer"
	"github.com/underline83/trgb/internal/stats"
	"github.com/underline83/trgb/internal/store"
)

const usage = `trgb - riconciliazione chiusure giornaliere

Usage:
  trgb import -file <workbook.xlsx> -period <archive|YYYY>
  trgb month -year <YYYY> -month <1-12>
  trgb year -year <YYYY>
  trgb top -year <YYYY> [-n 10]
  trgb bottom -year <YYYY> [-n 10]
  trgb compare-years -first <YYYY> -second <YYYY>
  trgb compare-months -y1 <YYYY> -m1 <M> -y2 <YYYY> -m2 <M>
  trgb close -date <YYYY-MM-DD> [-reopen] [-note <text>]
  trgb imports [-n 20]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	st, err := store.New(cfg.DBPath())
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	closingDay, err := cfg.ClosingWeekday()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Persisted settings override the config file.
	if v, ok, err := st.GetSetting("closing_weekday"); err == nil && ok {
		if d, valid := stats.ParseWeekday(v); valid {
			closingDay = d
		}
	}
	threshold := cfg.Business.VarianceAlertThreshold
	if v, ok, err := st.GetSettingFloat("variance_alert_threshold"); err == nil && ok {
		threshold = v
	}

	agg := stats.New(st, closingDay)

	switch os.Args[1] {
	case "import":
		runImport(st, os.Args[2:])
	case "month":
		fs := flag.NewFlagSet("month", flag.ExitOnError)
		year := fs.Int("year", 0, "year")
		month := fs.Int("month", 0, "month (1-12)")
		fs.Parse(os.Args[2:])
		result, err := agg.MonthSummary(*year, *month, threshold)
		exitOn(err)
		printJSON(result)
	case "year":
		fs := flag.NewFlagSet("year", flag.ExitOnError)
		year := fs.Int("year", 0, "year")
		fs.Parse(os.Args[2:])
		result, err := agg.YearSummary(*year, threshold)
		exitOn(err)
		printJSON(result)
	case "top", "bottom":
		fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
		year := fs.Int("year", 0, "year")
		n := fs.Int("n", 10, "number of days")
		fs.Parse(os.Args[2:])
		var result any
		if os.Args[1] == "top" {
			result, err = agg.TopDays(*year, *n)
		} else {
			result, err = agg.BottomDays(*year, *n)
		}
		exitOn(err)
		printJSON(result)
	case "compare-years":
		fs := flag.NewFlagSet("compare-years", flag.ExitOnError)
		first := fs.Int("first", 0, "baseline year")
		second := fs.Int("second", 0, "comparison year")
		fs.Parse(os.Args[2:])
		result, err := agg.CompareYears(*first, *second, threshold)
		exitOn(err)
		printJSON(result)
	case "compare-months":
		fs := flag.NewFlagSet("compare-months", flag.ExitOnError)
		y1 := fs.Int("y1", 0, "baseline year")
		m1 := fs.Int("m1", 0, "baseline month")
		y2 := fs.Int("y2", 0, "comparison year")
		m2 := fs.Int("m2", 0, "comparison month")
		fs.Parse(os.Args[2:])
		result, err := agg.CompareMonths(*y1, *m1, *y2, *m2, threshold)
		exitOn(err)
		printJSON(result)
	case "close":
		fs := flag.NewFlagSet("close", flag.ExitOnError)
		date := fs.String("date", "", "date (YYYY-MM-DD)")
		reopen := fs.Bool("reopen", false, "clear the manual closure flag")
		note := fs.String("note", "", "optional note")
		fs.Parse(os.Args[2:])
		exitOn(st.SetManuallyClosed(*date, !*reopen, *note))
		fmt.Printf("date %s manually_closed=%v\n", *date, !*reopen)
	case "imports":
		fs := flag.NewFlagSet("imports", flag.ExitOnError)
		n := fs.Int("n", 20, "number of entries")
		fs.Parse(os.Args[2:])
		entries, err := st.ListImports(*n)
		exitOn(err)
		printJSON(entries)
	default:
		fmt.Print(usage)
		os.Exit(2)
	}
}

func runImport(st *store.Store, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "workbook path (.xlsx)")
	period := fs.String("period", "", `"archive" or a 4-digit year`)
	importedBy := fs.String("by", "import", "origin tag for new rows")
	fs.Parse(args)

	if *file == "" || *period == "" {
		fs.Usage()
		os.Exit(2)
	}

	coordinator := importer.NewCoordinator(st)
	result, err := coordinator.Import(importer.ImportOptions{
		FilePath:   *file,
		Period:     *period,
		ImportedBy: *importedBy,
	})
	exitOn(err)

	fmt.Printf("sheet %q: %d rows, %d inserted, %d updated (%s)\n",
		result.SheetName, result.Rows, result.Inserted, result.Updated, result.Duration)
}

func exitOn(err error) {
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
	fmt.Println(string(data))
}
