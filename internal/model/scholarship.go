package model

import "github.com/volatiletech/null/v8"

// Scholarship represents a scholarship listing as served by the backend.
// Amounts are ranges or exact values; absent amounts stay absent and are
// never folded into zero.
type Scholarship struct {
	ID           int64
	Name         string
	Organization string
	Description  null.String
	AmountMin    null.Float64
	AmountMax    null.Float64
	AmountExact  null.Float64
	Deadline     null.Time
	Website      null.String
	Renewable    bool
}

// ScholarshipPage is one page of scholarship results.
type ScholarshipPage struct {
	Items    []Scholarship
	Total    int
	Page     int
	PageSize int
}
