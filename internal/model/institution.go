package model

import "github.com/volatiletech/null/v8"

// Institution represents a college or university as served by the backend.
type Institution struct {
	ID                int64
	Name              string
	City              string
	State             string
	Website           null.String
	TuitionInState    null.Float64
	TuitionOutOfState null.Float64
	AcceptanceRate    null.Float64
	EnrollmentTotal   null.Int64
	ApplicationFee    null.Float64
	Deadline          null.Time
	ImageURL          null.String
}

// InstitutionSearch holds the search/filter inputs for institution queries.
// Zero values mean "not filtered".
type InstitutionSearch struct {
	Query      string
	State      string
	MaxTuition null.Float64
	Page       int
	PageSize   int
}

// InstitutionPage is one page of institution results.
type InstitutionPage struct {
	Items    []Institution
	Total    int
	Page     int
	PageSize int
}
