package attendance

import (
	"time"

	"github.com/heakbomb/resto-backend-go/internal/pkg/validator"
)

type PunchRequest struct {
	StoreID    string   `json:"store_id"`
	RecordType string   `json:"record_type"`
	QRToken    string   `json:"qr_token"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`

	// Filled by the handler, not the client.
	ClientIP *string `json:"-"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StoreID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.RecordType, RecordTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "record_type", Message: "must be 'IN' or 'OUT'"})
	}
	if validator.IsEmpty(r.QRToken) {
		errs = append(errs, validator.ValidationError{Field: "qr_token", Message: "is required"})
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude and longitude must be provided together"})
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "must be between -180 and 180"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   *string  `json:"employee_name,omitempty"`
	StoreID        string   `json:"store_id"`
	RecordType     string   `json:"record_type"`
	RecordTime     string   `json:"record_time"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

func ToEventResponse(ev Event) EventResponse {
	return EventResponse{
		ID:             ev.ID,
		EmployeeID:     ev.EmployeeID,
		EmployeeName:   ev.EmployeeName,
		StoreID:        ev.StoreID,
		RecordType:     string(ev.RecordType),
		RecordTime:     ev.RecordTime.UTC().Format(time.RFC3339),
		Latitude:       ev.Latitude,
		Longitude:      ev.Longitude,
		DistanceMeters: ev.DistanceMeters,
	}
}

type StoreMonthFilter struct {
	YearMonth string `json:"year_month"`
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
}

func (f *StoreMonthFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, err := time.Parse("2006-01", f.YearMonth); err != nil {
		errs = append(errs, validator.ValidationError{Field: "year_month", Message: "must be in YYYY-MM format"})
	}
	if f.Page < 1 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "must be at least 1"})
	}
	if f.Limit < 1 || f.Limit > 200 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "must be between 1 and 200"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEventsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Events     []EventResponse `json:"events"`
}

type QRTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}
