// Package types contains presentation types shared by the app and the CLI.
package types

import "time"

// Listing is a discovered report merged with its metadata.
// CreatedKnown is false when Created holds the processing-time fallback.
type Listing struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	LastVisit    time.Time `json:"last_visit"`
	Created      time.Time `json:"created"`
	CreatedKnown bool      `json:"created_known"`
	Kind         string    `json:"kind,omitempty"`
}

// FileName returns the workbook name used when a report is exported by
// creation date, e.g. 2025_03_14.xlsx.
func (l Listing) FileName() string {
	return l.Created.Format("2006_01_02") + ".xlsx"
}
