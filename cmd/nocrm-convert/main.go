package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nocrm-converter/converter"
)

const defaultOutputName = "nocrm-converted.xlsx"

func main() {
	var configPath string
	var encoding string
	var dbPath string
	var force bool
	var debug bool
	var idBase int
	var labelColor string
	var timeout time.Duration
	var verifyPath string

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <input.csv> [output.xlsx]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "       %s -verify <workbook.xlsx>\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.StringVar(&configPath, "config", "", "YAML config file path.")
	flag.StringVar(&encoding, "encoding", "win1252", "Encoding of the export (win1252, utf-8, ...). Empty means detect.")
	flag.StringVar(&dbPath, "db", "", "SQLite ledger path. Empty disables the ledger.")
	flag.BoolVar(&force, "force", false, "Convert even if the ledger already holds this input.")
	flag.BoolVar(&debug, "debug", false, "Enable debug logs.")
	flag.IntVar(&idBase, "id-base", converter.DefaultSyntheticIDBase, "Base added to the row index for rows without an ID.")
	flag.StringVar(&labelColor, "label-color", converter.DefaultLabelColor, "Color written for every label.")
	flag.DurationVar(&timeout, "timeout", 0, "Overall timeout for the conversion (e.g. 30s, 2m).")
	flag.StringVar(&verifyPath, "verify", "", "Check a converted workbook instead of converting.")
	flag.Parse()

	visited := map[string]bool{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
	})

	// Base config from file (optional)
	fileCfg := &converter.FileConfig{}
	if configPath != "" {
		cfg, err := converter.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		fileCfg = cfg
	}

	// Merge config + CLI overrides
	finalDebug := fileCfg.Debug
	if visited["debug"] {
		finalDebug = debug
	}
	logger, err := newLogger(finalDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if verifyPath != "" {
		os.Exit(verify(logger, verifyPath))
	}

	finalEncoding := encoding
	if fileCfg.Encoding != "" && !visited["encoding"] {
		finalEncoding = fileCfg.Encoding
	}
	finalDB := fileCfg.DB
	if visited["db"] {
		finalDB = dbPath
	}
	finalIDBase := fileCfg.IDBase
	if finalIDBase == 0 || visited["id-base"] {
		finalIDBase = idBase
	}
	finalLabelColor := fileCfg.LabelColor
	if strings.TrimSpace(finalLabelColor) == "" || visited["label-color"] {
		finalLabelColor = labelColor
	}

	args := flag.Args()
	if len(args) < 1 || strings.TrimSpace(args[0]) == "" {
		flag.Usage()
		os.Exit(2)
	}
	input := args[0]
	output := fileCfg.Output
	if len(args) > 1 {
		output = args[1]
	}
	if output == "" {
		cwd, err := os.Getwd()
		if err != nil {
			logger.Fatal("resolve working directory", zap.Error(err))
		}
		output = filepath.Join(cwd, defaultOutputName)
	}

	runner, err := converter.NewRunner(converter.RunnerConfig{
		Encoding: finalEncoding,
		DBPath:   finalDB,
		Force:    force,
		Synthesize: converter.SynthesizeOptions{
			SyntheticIDBase: finalIDBase,
			LabelColor:      finalLabelColor,
			ExtraAliases:    fileCfg.Columns.Aliases,
		},
	}, logger)
	if err != nil {
		logger.Fatal("init runner", zap.Error(err))
	}
	defer runner.Close()

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res, err := runner.Convert(ctx, input, output)
	if errors.Is(err, converter.ErrAlreadyConverted) {
		logger.Info("nothing to do, use -force to convert again", zap.String("input", input))
		return
	}
	if err != nil {
		runner.Close()
		logger.Fatal("convert", zap.String("input", input), zap.Error(err))
	}
	if n := len(res.Diagnostics); n > 0 {
		logger.Warn("input anomalies were skipped", zap.Int("count", n))
	}
	fmt.Printf("Wrote %s\n", res.OutputPath)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func verify(logger *zap.Logger, path string) int {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("open workbook", zap.Error(err))
		return 1
	}
	defer f.Close()

	tables, problems, err := converter.ReadWorkbook(f)
	if err != nil {
		logger.Error("read workbook", zap.String("path", path), zap.Error(err))
		return 1
	}
	problems = append(problems, converter.VerifyTables(tables)...)
	for _, p := range problems {
		fmt.Println(p.String())
	}
	if len(problems) > 0 {
		logger.Warn("workbook has problems", zap.String("path", path), zap.Int("problems", len(problems)))
		return 1
	}
	fmt.Printf("OK %s: %d contacts, %d events\n", path, len(tables.Contacts), len(tables.Events))
	return 0
}
