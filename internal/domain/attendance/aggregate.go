package attendance

import "time"

const dayLayout = "2006-01-02"

// Aggregate pairs IN/OUT events into completed sessions and totals them per
// calendar day. The input must be one employee's events, sorted ascending by
// RecordTime; the repository read guarantees both.
//
// Pairing rules:
//   - an IN opens a session; the next OUT on the same day closes it
//   - an IN while a session is open is recorded as an anomaly and skipped
//   - an OUT with no open session is recorded as an anomaly and skipped
//   - a day counts toward WorkDays when it has at least one IN, even if the
//     trailing session is still open; open sessions contribute no minutes
func Aggregate(employeeID string, events []Event, loc *time.Location) MonthlySummary {
	if loc == nil {
		loc = time.UTC
	}

	summary := MonthlySummary{EmployeeID: employeeID}

	var (
		currentDay string
		openIn     *Event
		dayHasIn   bool
	)

	closeDay := func() {
		if dayHasIn {
			summary.WorkDays++
		}
		openIn = nil
		dayHasIn = false
	}

	for i := range events {
		ev := events[i]
		day := ev.RecordTime.In(loc).Format(dayLayout)
		if day != currentDay {
			if currentDay != "" {
				closeDay()
			}
			currentDay = day
		}

		switch ev.RecordType {
		case RecordTypeIn:
			dayHasIn = true
			if openIn != nil {
				summary.Anomalies = append(summary.Anomalies, Anomaly{
					EventID: ev.ID,
					Date:    day,
					Reason:  "duplicate IN while a session is open",
				})
				continue
			}
			openIn = &events[i]

		case RecordTypeOut:
			if openIn == nil {
				summary.Anomalies = append(summary.Anomalies, Anomaly{
					EventID: ev.ID,
					Date:    day,
					Reason:  "OUT without a matching IN",
				})
				continue
			}
			minutes := int(ev.RecordTime.Sub(openIn.RecordTime).Minutes())
			if minutes > 0 {
				summary.WorkMinutes += minutes
			}
			openIn = nil
		}
	}
	if currentDay != "" {
		closeDay()
	}

	return summary
}
