package model

import "time"

// ExportFileVersion tags exported snapshots so future imports can migrate.
const ExportFileVersion = "1.0"

// ExportFile is the import/export interchange format. Only Assets is required
// on import; Transactions defaults to an empty ledger.
type ExportFile struct {
	Version      string        `json:"version"`
	Timestamp    time.Time     `json:"timestamp"`
	Assets       []Asset       `json:"assets"`
	Transactions []Transaction `json:"transactions"`
}
