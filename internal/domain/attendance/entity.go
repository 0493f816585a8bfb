package attendance

import "time"

type RecordType string

const (
	RecordTypeIn  RecordType = "IN"
	RecordTypeOut RecordType = "OUT"
)

var RecordTypeValues = []string{
	string(RecordTypeIn),
	string(RecordTypeOut),
}

// Event is a single punch. Events are append-only: once written they are
// never updated or deleted, so the ledger stays a usable audit trail.
type Event struct {
	ID             string
	EmployeeID     string
	StoreID        string
	RecordType     RecordType
	RecordTime     time.Time
	Latitude       *float64
	Longitude      *float64
	DistanceMeters *float64
	ClientIP       *string
	CreatedAt      time.Time

	// DTO
	EmployeeName *string
}

// MonthlySummary is the aggregate payroll consumes: verified working time for
// one employee over one calendar month.
type MonthlySummary struct {
	EmployeeID  string
	WorkDays    int
	WorkMinutes int
	Anomalies   []Anomaly
}

// Anomaly marks a punch that could not be paired. Anomalies are recorded and
// skipped; they never abort aggregation.
type Anomaly struct {
	EventID string
	Date    string
	Reason  string
}
