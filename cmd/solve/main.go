// Command solve is the crossword solver CLI: it loads a grid and
// dictionary from disk, runs the solver, and prints or exports the
// result (spec.md §6, "A thin surface may expose solve, load-dictionary,
// load-grid, export-solution").
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"crossword-solver/internal/dictionary"
	"crossword-solver/internal/grid"
	"crossword-solver/internal/solve"
	"crossword-solver/internal/validate"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "solve":
		err = runSolve(os.Args[2:])
	case "load-grid":
		err = runLoadGrid(os.Args[2:])
	case "load-dictionary":
		err = runLoadDictionary(os.Args[2:])
	case "export-solution":
		err = runExportSolution(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: solve <solve|load-grid|load-dictionary|export-solution> [flags]")
}

func runSolve(args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	gridPath := fs.String("grid", "", "path to a grid file (whitespace-tokenized rows)")
	dictPath := fs.String("dict", "", "path to a newline-delimited word list")
	seed := fs.Int64("seed", 0, "RNG seed (0 = random)")
	maxSolutions := fs.Int("max-solutions", 1, "number of solutions to collect")
	timeout := fs.Duration("timeout", 30*time.Second, "solve timeout (0 = no timeout)")
	outPath := fs.String("out", "", "write the result JSON here instead of stdout")
	fs.Parse(args)

	if *gridPath == "" || *dictPath == "" {
		return fmt.Errorf("-grid and -dict are required")
	}

	g, err := loadGridFile(*gridPath)
	if err != nil {
		return fmt.Errorf("load grid: %w", err)
	}

	dict, err := loadDictionaryFile(*dictPath)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	solver := solve.NewSolver(solve.Config{MaxSolutions: *maxSolutions, RNGSeed: *seed}, logger)

	start := time.Now()
	result, err := solver.Solve(ctx, g, dict)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	if *outPath != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return os.WriteFile(*outPath, data, 0644)
	}

	printResult(result, elapsed)
	return nil
}

func runLoadGrid(args []string) error {
	fs := flag.NewFlagSet("load-grid", flag.ExitOnError)
	path := fs.String("path", "", "path to a grid file")
	fs.Parse(args)

	if *path == "" {
		return fmt.Errorf("-path is required")
	}

	g, err := loadGridFile(*path)
	if err != nil {
		return err
	}

	slots, prefilled, err := solve.ExtractSlots(g)
	if err != nil {
		return err
	}

	fmt.Printf("%dx%d grid, %d slots, %d pre-filled letters\n", g.Rows, g.Cols, len(slots), len(prefilled))
	for _, name := range solve.SortedNames(slots) {
		fmt.Printf("  %-10s length=%d\n", name, slots[name].Length())
	}
	return nil
}

func runLoadDictionary(args []string) error {
	fs := flag.NewFlagSet("load-dictionary", flag.ExitOnError)
	path := fs.String("path", "", "path to a newline-delimited word list")
	fs.Parse(args)

	if *path == "" {
		return fmt.Errorf("-path is required")
	}

	dict, err := loadDictionaryFile(*path)
	if err != nil {
		return err
	}

	fmt.Printf("%s words loaded\n", humanize.Comma(int64(dict.Size())))
	return nil
}

func runExportSolution(args []string) error {
	fs := flag.NewFlagSet("export-solution", flag.ExitOnError)
	in := fs.String("in", "", "path to a solve result JSON file (as written by solve -out)")
	out := fs.String("out", "", "path to write the grid-export JSON")
	fs.Parse(args)

	if *in == "" || *out == "" {
		return fmt.Errorf("-in and -out are required")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read result: %w", err)
	}

	var result solve.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("parse result: %w", err)
	}

	slots, _, err := solve.ExtractSlots(result.Grid)
	if err != nil {
		return fmt.Errorf("extract slots: %w", err)
	}
	export := validate.GridExport{Grid: result.Grid.Render(), Slots: make(map[string][][2]int, len(slots))}
	for name, slot := range slots {
		cells := make([][2]int, len(slot.Cells))
		for i, pos := range slot.Cells {
			cells[i] = [2]int{pos.Row, pos.Col}
		}
		export.Slots[name] = cells
	}

	payload, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}

	if errs := validate.ValidateGridExportJSON(payload); len(errs) > 0 {
		return fmt.Errorf("exported grid failed validation: %s", errs.Error())
	}

	return os.WriteFile(*out, payload, 0644)
}

func loadGridFile(path string) (*grid.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return grid.ParseLines(splitLines(string(data)))
}

func loadDictionaryFile(path string) (*dictionary.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dictionary.LoadNormalized(f)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func printResult(result *solve.Result, elapsed time.Duration) {
	colored := isatty.IsTerminal(os.Stdout.Fd())

	header := func(s string) string {
		if !colored {
			return s
		}
		return "\033[1m" + s + "\033[0m"
	}

	fmt.Println(header("ACROSS"))
	for _, c := range result.Across {
		fmt.Printf("  %d. %s\n", c.Number, c.Word)
	}
	fmt.Println(header("DOWN"))
	for _, c := range result.Down {
		fmt.Printf("  %d. %s\n", c.Number, c.Word)
	}
	fmt.Printf("\nsolved in %s (%s recursive calls)\n",
		elapsed.Round(time.Millisecond), humanize.Comma(int64(result.Stats.RecursiveCalls)))
}
