package storage

import (
	"fmt"
	"time"
)

// Flight outcomes stored in the flights table.
const (
	OutcomeLanded  = "landed"
	OutcomeCrashed = "crashed"
)

// FlightRecord is one finished rocket flight.
type FlightRecord struct {
	ID          int64
	Outcome     string // OutcomeLanded or OutcomeCrashed
	Score       int
	Orbits      int
	FuelStart   float64
	FuelLeft    float64
	Ticks       int
	MaxSpeed    float64 // units per second
	QuizCorrect int
	QuizTotal   int
	CreatedAt   time.Time
}

// FlightStats aggregates the flight log.
type FlightStats struct {
	Attempts   int
	Landings   int
	Crashes    int
	BestOrbits int
	BestScore  int
	AvgFuel    float64 // average fuel earned by the quiz
	LastFlown  time.Time
}

// SaveFlight records a finished flight.
// Returns the ID of the inserted record.
func (s *Store) SaveFlight(r FlightRecord) (int64, error) {
	if r.Outcome != OutcomeLanded && r.Outcome != OutcomeCrashed {
		return 0, fmt.Errorf("storage: unknown flight outcome %q", r.Outcome)
	}

	res, err := s.db.Exec(
		`INSERT INTO flights
		 (outcome, score, orbits, fuel_start, fuel_left, ticks, max_speed, quiz_correct, quiz_total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Outcome,
		r.Score,
		r.Orbits,
		r.FuelStart,
		r.FuelLeft,
		r.Ticks,
		r.MaxSpeed,
		r.QuizCorrect,
		r.QuizTotal,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save flight: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentFlights retrieves the most recent flights, newest first.
func (s *Store) RecentFlights(limit int) ([]FlightRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, outcome, score, orbits, fuel_start, fuel_left, ticks, max_speed,
		        quiz_correct, quiz_total, created_at
		 FROM flights
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query flights: %w", err)
	}
	defer rows.Close()

	var records []FlightRecord
	for rows.Next() {
		var r FlightRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Outcome,
			&r.Score,
			&r.Orbits,
			&r.FuelStart,
			&r.FuelLeft,
			&r.Ticks,
			&r.MaxSpeed,
			&r.QuizCorrect,
			&r.QuizTotal,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// FlightStats aggregates every recorded flight.
func (s *Store) FlightStats() (*FlightStats, error) {
	stats := &FlightStats{}
	var lastFlown any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(orbits), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(fuel_start), 0),
		        MAX(created_at)
		 FROM flights`,
		OutcomeLanded, OutcomeCrashed,
	).Scan(
		&stats.Attempts,
		&stats.Landings,
		&stats.Crashes,
		&stats.BestOrbits,
		&stats.BestScore,
		&stats.AvgFuel,
		&lastFlown,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get flight stats: %w", err)
	}
	stats.LastFlown = parseTimestamp(lastFlown)

	return stats, nil
}

// ClearFlights deletes the whole flight log.
func (s *Store) ClearFlights() error {
	if _, err := s.db.Exec("DELETE FROM flights"); err != nil {
		return fmt.Errorf("storage: cannot clear flights: %w", err)
	}
	return nil
}
