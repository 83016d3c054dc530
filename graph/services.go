package graph

import (
	"sync"
	"time"
)

// Domain services registered into the graph by activation units. Each store
// follows the same optional-service protocol as the periodic updater:
// created on demand, removed by setting nil.

// BikeStation is one bike-share station with live availability.
type BikeStation struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	BikesAvailable  int     `json:"bikes_available"`
	SpacesAvailable int     `json:"spaces_available"`
}

// BikeStationStore holds the latest bike-share availability snapshot per
// network. Pollers replace their network's stations wholesale on each fetch.
type BikeStationStore struct {
	mu       sync.RWMutex
	networks map[string][]BikeStation
}

// Replace swaps the station list for a network.
func (s *BikeStationStore) Replace(network string, stations []BikeStation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.networks == nil {
		s.networks = make(map[string][]BikeStation)
	}
	s.networks[network] = stations
}

// Stations returns the stations of one network.
func (s *BikeStationStore) Stations(network string) []BikeStation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stations := make([]BikeStation, len(s.networks[network]))
	copy(stations, s.networks[network])
	return stations
}

// Len returns the total station count across networks.
func (s *BikeStationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, stations := range s.networks {
		n += len(stations)
	}
	return n
}

// StopTimeUpdate is one realtime delay report for a trip at a stop.
type StopTimeUpdate struct {
	TripID         string `json:"trip_id"`
	StopID         string `json:"stop_id"`
	ArrivalDelay   int    `json:"arrival_delay"`   // seconds
	DepartureDelay int    `json:"departure_delay"` // seconds
}

// DelayStore holds the latest stop-time updates keyed by trip.
type DelayStore struct {
	mu    sync.RWMutex
	trips map[string][]StopTimeUpdate
}

// Apply replaces the stored updates for every trip present in updates.
func (s *DelayStore) Apply(updates []StopTimeUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trips == nil {
		s.trips = make(map[string][]StopTimeUpdate)
	}
	byTrip := make(map[string][]StopTimeUpdate)
	for _, u := range updates {
		byTrip[u.TripID] = append(byTrip[u.TripID], u)
	}
	for trip, tripUpdates := range byTrip {
		s.trips[trip] = tripUpdates
	}
}

// Trip returns the updates stored for one trip.
func (s *DelayStore) Trip(tripID string) []StopTimeUpdate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	updates := make([]StopTimeUpdate, len(s.trips[tripID]))
	copy(updates, s.trips[tripID])
	return updates
}

// Len returns the number of trips with stored updates.
func (s *DelayStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trips)
}

// Alert is one service alert affecting the network.
type Alert struct {
	ID          string    `json:"id"`
	Severity    string    `json:"severity"`
	Header      string    `json:"header"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// AlertStore holds active service alerts keyed by ID.
type AlertStore struct {
	mu     sync.RWMutex
	alerts map[string]Alert
}

// Put adds or replaces an alert.
func (s *AlertStore) Put(alert Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.alerts == nil {
		s.alerts = make(map[string]Alert)
	}
	s.alerts[alert.ID] = alert
}

// Remove deletes an alert by ID.
func (s *AlertStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.alerts, id)
}

// Get returns an alert by ID.
func (s *AlertStore) Get(id string) (Alert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alert, ok := s.alerts[id]
	return alert, ok
}

// All returns every stored alert.
func (s *AlertStore) All() []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alerts := make([]Alert, 0, len(s.alerts))
	for _, alert := range s.alerts {
		alerts = append(alerts, alert)
	}
	return alerts
}

// Len returns the number of stored alerts.
func (s *AlertStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.alerts)
}
