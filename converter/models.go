package converter

import "time"

// ConversionRun is one ledger row per converted input file.
type ConversionRun struct {
	ID          uint   `gorm:"primaryKey"`
	RunID       string `gorm:"uniqueIndex;size:36"`
	InputPath   string `gorm:"index:idx_input_sha;size:1024"`
	InputSHA256 string `gorm:"column:input_sha256;index:idx_input_sha;size:64"`
	SizeBytes   int64
	Encoding    string `gorm:"size:32"`
	OutputPath  string `gorm:"size:1024"`
	Contacts    int
	Events      int
	Labels      int
	Activites   int
	Natures     int
	// ContactLabels counts junction rows, not distinct labels.
	ContactLabels int
	Diagnostics   int
	StartedAt     time.Time `gorm:"index"`
	FinishedAt    *time.Time
	Succeeded     bool   `gorm:"index"`
	LastError     string `gorm:"type:text"`
}

// ConversionDiagnostic keeps each locally recovered anomaly of a run so
// skipped chunks can be inspected after the fact.
type ConversionDiagnostic struct {
	ID     uint   `gorm:"primaryKey"`
	RunID  string `gorm:"index;size:36"`
	Row    int    `gorm:"column:row_index;index"`
	Column string `gorm:"column:column_name;size:128"`
	Reason string `gorm:"index;size:32"`
	Text   string `gorm:"type:text"`
}

// Diagnostic reasons.
const (
	ReasonUnknownEncoding = "unknown_encoding"
	ReasonDecodeFailed    = "decode_failed"
	ReasonNoTimestamp     = "no_leading_timestamp"
	ReasonInvalidDate     = "invalid_date"
	ReasonInvalidReminder = "invalid_reminder"
)

// Diagnostic describes an input anomaly that was skipped or defaulted instead
// of failing the run. Row is the 0-based row in the export (header is 0);
// it is -1 for file-level diagnostics.
type Diagnostic struct {
	Row    int
	Column string
	Reason string
	Text   string
}
