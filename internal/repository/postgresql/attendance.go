package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/heakbomb/resto-backend-go/internal/domain/attendance"
	"github.com/heakbomb/resto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceEventRepository struct {
	db *database.DB
}

// Append implements attendance.EventRepository.
func (r *attendanceEventRepository) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			employee_id, store_id, record_type, record_time,
			latitude, longitude, distance_meters, client_ip
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		event.EmployeeID,
		event.StoreID,
		event.RecordType,
		event.RecordTime,
		event.Latitude,
		event.Longitude,
		event.DistanceMeters,
		event.ClientIP,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to append attendance event: %w", err)
	}

	return event, nil
}

// GetLast implements attendance.EventRepository.
func (r *attendanceEventRepository) GetLast(ctx context.Context, employeeID string, storeID string) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, store_id, record_type, record_time,
			   latitude, longitude, distance_meters, client_ip, created_at
		FROM attendance_events
		WHERE employee_id = $1
		  AND store_id = $2
		ORDER BY record_time DESC, created_at DESC
		LIMIT 1
	`

	var ev attendance.Event
	err := q.QueryRow(ctx, query, employeeID, storeID).Scan(
		&ev.ID, &ev.EmployeeID, &ev.StoreID, &ev.RecordType, &ev.RecordTime,
		&ev.Latitude, &ev.Longitude, &ev.DistanceMeters, &ev.ClientIP, &ev.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // employee has never punched
		}
		return nil, fmt.Errorf("failed to get last attendance event: %w", err)
	}

	return &ev, nil
}

// ListRecent implements attendance.EventRepository.
func (r *attendanceEventRepository) ListRecent(ctx context.Context, employeeID string, storeID string, limit int) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, store_id, record_type, record_time,
			   latitude, longitude, distance_meters, client_ip, created_at
		FROM attendance_events
		WHERE employee_id = $1
		  AND store_id = $2
		ORDER BY record_time DESC, created_at DESC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, employeeID, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent attendance events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows, false)
}

// ListByEmployeeRange implements attendance.EventRepository.
func (r *attendanceEventRepository) ListByEmployeeRange(ctx context.Context, employeeID string, storeID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, store_id, record_type, record_time,
			   latitude, longitude, distance_meters, client_ip, created_at
		FROM attendance_events
		WHERE employee_id = $1
		  AND store_id = $2
		  AND record_time >= $3
		  AND record_time < $4
		ORDER BY record_time ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance events by range: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows, false)
}

// ListByStoreRange implements attendance.EventRepository.
func (r *attendanceEventRepository) ListByStoreRange(ctx context.Context, storeID string, from, to time.Time, page, limit int) ([]attendance.Event, int64, error) {
	q := GetQuerier(ctx, r.db)

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_events
		WHERE store_id = $1
		  AND record_time >= $2
		  AND record_time < $3
	`
	var total int64
	if err := q.QueryRow(ctx, countQuery, storeID, from, to).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance events: %w", err)
	}

	query := `
		SELECT a.id, a.employee_id, a.store_id, a.record_type, a.record_time,
			   a.latitude, a.longitude, a.distance_meters, a.client_ip, a.created_at,
			   e.name AS employee_name
		FROM attendance_events a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.store_id = $1
		  AND a.record_time >= $2
		  AND a.record_time < $3
		ORDER BY a.record_time DESC, a.created_at DESC
		LIMIT $4 OFFSET $5
	`

	if limit == 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	rows, err := q.Query(ctx, query, storeID, from, to, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query store attendance events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows, true)
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func scanEvents(rows pgx.Rows, withName bool) ([]attendance.Event, error) {
	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		dest := []interface{}{
			&ev.ID, &ev.EmployeeID, &ev.StoreID, &ev.RecordType, &ev.RecordTime,
			&ev.Latitude, &ev.Longitude, &ev.DistanceMeters, &ev.ClientIP, &ev.CreatedAt,
		}
		if withName {
			dest = append(dest, &ev.EmployeeName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}

	return events, nil
}

func NewAttendanceEventRepository(db *database.DB) attendance.EventRepository {
	return &attendanceEventRepository{db: db}
}
