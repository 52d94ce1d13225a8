package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrAlreadyConverted is returned when the ledger already holds a successful
// run for the same input path and content.
var ErrAlreadyConverted = errors.New("input already converted")

type RunnerConfig struct {
	// Encoding requested for the export. Empty means detect.
	Encoding string
	// DBPath enables the SQLite ledger when set.
	DBPath string
	// Force converts even when the ledger already has this input.
	Force      bool
	Synthesize SynthesizeOptions
}

// Result is the outcome of one conversion.
type Result struct {
	RunID       string
	InputPath   string
	OutputPath  string
	InputSHA256 string
	Encoding    string
	Tables      *Tables
	Diagnostics []Diagnostic
}

type Runner struct {
	cfg    RunnerConfig
	db     *gorm.DB
	logger *zap.Logger
}

func NewRunner(cfg RunnerConfig, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{cfg: cfg, logger: logger}
	if strings.TrimSpace(cfg.DBPath) != "" {
		db, err := OpenDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open ledger %s: %w", cfg.DBPath, err)
		}
		r.db = db
	}
	return r, nil
}

func (r *Runner) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	r.db = nil
	return err
}

// Convert reads inputPath, builds the six tables and writes them to
// outputPath. The output only appears once it is complete.
func (r *Runner) Convert(ctx context.Context, inputPath string, outputPath string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now().UTC()
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}
	res := &Result{
		RunID:       uuid.NewString(),
		InputPath:   inputPath,
		OutputPath:  outputPath,
		InputSHA256: HashContent(content, 0),
	}
	log := r.logger.With(zap.String("run_id", res.RunID), zap.String("input", inputPath))

	if !r.cfg.Force {
		already, err := r.isAlreadyConverted(inputPath, res.InputSHA256)
		if err != nil {
			return nil, err
		}
		if already {
			log.Info("skip already converted input", zap.String("sha256", res.InputSHA256))
			return nil, ErrAlreadyConverted
		}
	}

	runErr := r.convert(ctx, log, content, res)
	if ledgerErr := r.record(res, int64(len(content)), start, runErr); ledgerErr != nil {
		log.Warn("ledger write failed", zap.Error(ledgerErr))
		if runErr == nil {
			runErr = ledgerErr
		}
	}
	if runErr != nil {
		return res, runErr
	}
	return res, nil
}

func (r *Runner) convert(ctx context.Context, log *zap.Logger, content []byte, res *Result) error {
	if len(content) == 0 {
		return ErrEmptyInput
	}
	text, encName, diags := Decode(content, r.cfg.Encoding)
	res.Encoding = encName
	for i := range diags {
		diags[i].Row = -1
	}
	log.Debug("decoded input", zap.String("encoding", encName), zap.Int("bytes", len(content)))

	rows := ParseDelimited(text)
	tables, rowDiags, err := Synthesize(ctx, rows, r.cfg.Synthesize)
	res.Diagnostics = append(diags, rowDiags...)
	if err != nil {
		return err
	}
	res.Tables = tables

	for _, d := range res.Diagnostics {
		log.Debug("recovered input anomaly",
			zap.Int("row", d.Row),
			zap.String("column", d.Column),
			zap.String("reason", d.Reason),
			zap.String("text", d.Text),
		)
	}

	if err := writeFileAtomic(res.OutputPath, func(w io.Writer) error {
		return WriteWorkbook(w, tables)
	}); err != nil {
		return fmt.Errorf("write %s: %w", res.OutputPath, err)
	}

	log.Info("conversion done",
		zap.String("output", res.OutputPath),
		zap.String("encoding", res.Encoding),
		zap.Int("rows", len(rows)),
		zap.Int("contacts", len(tables.Contacts)),
		zap.Int("events", len(tables.Events)),
		zap.Int("labels", len(tables.Labels)),
		zap.Int("activites", len(tables.Activites)),
		zap.Int("natures", len(tables.Natures)),
		zap.Int("contact_labels", len(tables.ContactLabels)),
		zap.Int("diagnostics", len(res.Diagnostics)),
	)
	return nil
}

func (r *Runner) isAlreadyConverted(path string, sha string) (bool, error) {
	if r.db == nil {
		return false, nil
	}
	var run ConversionRun
	err := r.db.Where("input_path = ? AND input_sha256 = ? AND succeeded = ?", path, sha, true).First(&run).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (r *Runner) record(res *Result, size int64, start time.Time, runErr error) error {
	if r.db == nil {
		return nil
	}
	finished := time.Now().UTC()
	run := ConversionRun{
		RunID:       res.RunID,
		InputPath:   res.InputPath,
		InputSHA256: res.InputSHA256,
		SizeBytes:   size,
		Encoding:    res.Encoding,
		OutputPath:  res.OutputPath,
		Diagnostics: len(res.Diagnostics),
		StartedAt:   start,
		FinishedAt:  &finished,
		Succeeded:   runErr == nil,
	}
	if runErr != nil {
		run.LastError = runErr.Error()
	}
	if t := res.Tables; t != nil {
		run.Contacts = len(t.Contacts)
		run.Events = len(t.Events)
		run.Labels = len(t.Labels)
		run.Activites = len(t.Activites)
		run.Natures = len(t.Natures)
		run.ContactLabels = len(t.ContactLabels)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return err
		}
		if len(res.Diagnostics) == 0 {
			return nil
		}
		rows := make([]ConversionDiagnostic, 0, len(res.Diagnostics))
		for _, d := range res.Diagnostics {
			rows = append(rows, ConversionDiagnostic{RunID: res.RunID, Row: d.Row, Column: d.Column, Reason: d.Reason, Text: d.Text})
		}
		return tx.CreateInBatches(&rows, 200).Error
	})
}
