package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"reqnorm/internal/cache"
	"reqnorm/internal/config"
	"reqnorm/internal/pipeline"
	"reqnorm/internal/resolve"
	"reqnorm/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	fc := cache.New(cfg.CacheDir)
	resolver := resolve.NewConsole(os.Stdin, os.Stdout)
	svc := pipeline.NewProcessingService(db, cfg, fc, resolver)

	// Ctrl-C during an interactive prompt aborts only the file being
	// resolved; the batch loop then moves on. An interrupt with no
	// prompt pending, or a SIGTERM, exits with the conventional 130.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range interrupts {
			if sig == os.Interrupt && resolver.Interrupt() {
				continue
			}
			fmt.Fprintln(os.Stderr, "\noperation cancelled")
			os.Exit(130)
		}
	}()

	cmd := os.Args[1]
	switch cmd {
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input file (.xlsx/.xlsm/.csv/.pdf/.html)")
		output := fs.String("output", "", "output path (default: <output dir>/<name>_normalized.csv)")
		_ = fs.Parse(os.Args[2:])
		if *input == "" {
			must(fmt.Errorf("--input is required"))
		}
		res, err := svc.ProcessFile(*input, *output)
		if errors.Is(err, resolve.ErrCancelled) {
			os.Exit(130)
		}
		must(err)
		fmt.Printf("done: %d record(s) -> %s\n", res.Records, res.OutputPath)
	case "batch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", "", "directory of source files")
		typeFilter := fs.String("type", "all", "all|pdf|excel|csv|html")
		_ = fs.Parse(os.Args[2:])
		if *dir == "" {
			must(fmt.Errorf("--dir is required"))
		}
		res, err := svc.ProcessBatch(*dir, *typeFilter)
		must(err)
		if res.Failed > 0 {
			os.Exit(1)
		}
	case "template":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "template path (.csv or .xlsx)")
		_ = fs.Parse(os.Args[2:])
		if *out == "" {
			must(fmt.Errorf("--out is required"))
		}
		must(pipeline.GenerateTemplate(*out))
		fmt.Printf("template generated: %s\n", *out)
	case "history":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max entries")
		_ = fs.Parse(os.Args[2:])
		runs, err := db.ListRuns(*limit)
		must(err)
		for _, run := range runs {
			fmt.Printf("%s  %-9s %-6s %4d rec  %s -> %s\n",
				run.CreatedAt, run.Status, run.SourceType, run.Extracted, run.InputPath, run.OutputPath)
		}
	case "cache:clear":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "clear only this file's entry")
		_ = fs.Parse(os.Args[2:])
		fc.Clear(*file)
		if *file == "" {
			fmt.Println("cache cleared")
		} else {
			fmt.Printf("cache cleared for %s\n", *file)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: reqnorm <command>")
	fmt.Println("commands:")
	fmt.Println("  run --input=requirements.xlsx [--output=out.csv]")
	fmt.Println("  batch --dir=./docs [--type=all|pdf|excel|csv|html]")
	fmt.Println("  template --out=./template.xlsx")
	fmt.Println("  history [--limit=20]")
	fmt.Println("  cache:clear [--file=requirements.xlsx]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
