package models

import "time"

// Auditable carries the audit columns shared by every table.
type Auditable struct {
	CreatedDate  time.Time `json:"created_date" db:"created_date"`
	ModifiedDate time.Time `json:"modified_date" db:"modified_date"`
	CreatedBy    string    `json:"created_by,omitempty" db:"created_by"`
	ModifiedBy   string    `json:"modified_by,omitempty" db:"modified_by"`
}

// Touch stamps the audit columns for a write made by actor at now.
func (a *Auditable) Touch(actor string, now time.Time) {
	if a.CreatedDate.IsZero() {
		a.CreatedDate = now
		a.CreatedBy = actor
	}
	a.ModifiedDate = now
	a.ModifiedBy = actor
}
