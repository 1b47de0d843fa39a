package storage

import "testing"

func TestSaveFlightAndRecent(t *testing.T) {
	store := openTestStore(t)

	records := []FlightRecord{
		{Outcome: OutcomeCrashed, Orbits: 1, FuelStart: 60, FuelLeft: 12.5, Ticks: 900, MaxSpeed: 310, QuizCorrect: 3, QuizTotal: 5},
		{Outcome: OutcomeLanded, Score: 200, Orbits: 2, FuelStart: 100, FuelLeft: 40, Ticks: 4200, MaxSpeed: 180, QuizCorrect: 5, QuizTotal: 5},
		{Outcome: OutcomeLanded, Score: 100, FuelStart: 80, FuelLeft: 70, Ticks: 1500, MaxSpeed: 90, QuizCorrect: 4, QuizTotal: 5},
	}
	for _, r := range records {
		if _, err := store.SaveFlight(r); err != nil {
			t.Fatalf("SaveFlight() failed: %v", err)
		}
	}

	recent, err := store.RecentFlights(2)
	if err != nil {
		t.Fatalf("RecentFlights() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentFlights(2) returned %d", len(recent))
	}
	// Newest first.
	if recent[0].Score != 100 || recent[1].Score != 200 {
		t.Errorf("RecentFlights() order = %d, %d", recent[0].Score, recent[1].Score)
	}
	got := recent[1]
	got.ID, got.CreatedAt = 0, records[1].CreatedAt
	if got != records[1] {
		t.Errorf("round trip = %+v, expected %+v", got, records[1])
	}
	if recent[0].CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestSaveFlightRejectsUnknownOutcome(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveFlight(FlightRecord{Outcome: "flying"}); err == nil {
		t.Error("SaveFlight() accepted an unfinished flight")
	}
}

func TestFlightStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.FlightStats()
	if err != nil {
		t.Fatalf("FlightStats() on empty log failed: %v", err)
	}
	if empty.Attempts != 0 || !empty.LastFlown.IsZero() {
		t.Errorf("empty FlightStats() = %+v", empty)
	}

	store.SaveFlight(FlightRecord{Outcome: OutcomeLanded, Score: 250, Orbits: 3, FuelStart: 100})
	store.SaveFlight(FlightRecord{Outcome: OutcomeCrashed, Orbits: 5, FuelStart: 40})
	store.SaveFlight(FlightRecord{Outcome: OutcomeLanded, Score: 100, FuelStart: 60})

	stats, err := store.FlightStats()
	if err != nil {
		t.Fatalf("FlightStats() failed: %v", err)
	}
	if stats.Attempts != 3 || stats.Landings != 2 || stats.Crashes != 1 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.BestOrbits != 5 || stats.BestScore != 250 {
		t.Errorf("bests = %+v", stats)
	}
	if stats.AvgFuel < 66.66 || stats.AvgFuel > 66.67 {
		t.Errorf("AvgFuel = %v, expected about 66.67", stats.AvgFuel)
	}

	if err := store.ClearFlights(); err != nil {
		t.Fatalf("ClearFlights() failed: %v", err)
	}
	if recent, _ := store.RecentFlights(10); len(recent) != 0 {
		t.Errorf("RecentFlights() after clear returned %d", len(recent))
	}
}
