package main

import (
	"flag"
	"os"
	"time"

	"github.com/yanun0323/logs"

	"main/internal/datagen"
	"main/internal/ops"
)

func main() {
	configPath := flag.String("config", "", "path to JSON config (empty = built-in defaults)")
	dir := flag.String("dir", "", "output directory (default: config input directory)")
	prices := flag.Int("prices", 1000, "price ticks per product")
	books := flag.Int("books", 1000, "market-data updates per product")
	trades := flag.Int("trades", 10, "trades per product")
	inquiries := flag.Int("inquiries", 10, "inquiries per product")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	cfg := ops.Default()
	if *configPath != "" {
		loaded, err := ops.Load(*configPath)
		if err != nil {
			logs.Errorf("load config: %+v", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *dir == "" {
		*dir = cfg.Input
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	gen := datagen.New(datagen.Config{
		Dir:       *dir,
		Prices:    *prices,
		Books:     *books,
		Trades:    *trades,
		Inquiries: *inquiries,
		Seed:      *seed,
	}, cfg.Securities)

	if err := gen.Generate(); err != nil {
		logs.Errorf("generate inputs: %+v", err)
		os.Exit(1)
	}
	logs.Infof("datagen: %d securities under %s", cfg.Securities.Len(), *dir)
}
