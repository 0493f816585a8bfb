package store

import "time"

// Store is the directory read model for a restaurant location. Store
// management (signup, settings, subscription) lives in the portal backend;
// this service only reads id, name and the registered coordinates used to
// compute punch distances.
type Store struct {
	ID        string
	OwnerID   string
	Name      string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
