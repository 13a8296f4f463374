package storage

import (
	"path/filepath"
	"testing"

	"github.com/justinbroadbent/inerticorp/internal/sim"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveSlotRoundTrip(t *testing.T) {
	store := testStore(t)

	st := sim.NewState(sim.DefaultTuning())
	st.Quarter = 7
	st.Phase = sim.PhasePlayCards
	st.Hand = []string{"ship-roadmap", "bridge-round"}
	st.Tenure.Favor = 63
	st.Tenure.EvilScore = 20
	st.Deferred = []sim.Situation{{ID: "tech-debt", Kind: sim.SituationFollowUp, QueuedQuarter: 6}}

	if err := store.SaveSlot("autosave", "normal", 999, st); err != nil {
		t.Fatalf("SaveSlot: %v", err)
	}

	entry, err := store.LoadSlot("autosave")
	if err != nil {
		t.Fatalf("LoadSlot: %v", err)
	}
	if entry == nil {
		t.Fatal("LoadSlot returned nil for an existing slot")
	}
	if entry.Slot != "autosave" || entry.Difficulty != "normal" || entry.Seed != 999 {
		t.Errorf("entry metadata = %+v", entry)
	}
	if entry.Quarter != 7 {
		t.Errorf("Quarter = %d, want 7", entry.Quarter)
	}

	a, _ := sim.MarshalState(st)
	b, _ := sim.MarshalState(entry.State)
	if string(a) != string(b) {
		t.Errorf("state did not round-trip:\n%s\nvs\n%s", a, b)
	}
}

func TestSaveSlotOverwrites(t *testing.T) {
	store := testStore(t)

	st := sim.NewState(sim.DefaultTuning())
	if err := store.SaveSlot("autosave", "normal", 1, st); err != nil {
		t.Fatal(err)
	}

	st.Quarter = 12
	if err := store.SaveSlot("autosave", "hard", 2, st); err != nil {
		t.Fatal(err)
	}

	entry, err := store.LoadSlot("autosave")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Difficulty != "hard" || entry.Seed != 2 || entry.Quarter != 12 {
		t.Errorf("slot not overwritten: %+v", entry)
	}

	slots, err := store.ListSlots()
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 1 {
		t.Errorf("ListSlots = %d entries, want 1", len(slots))
	}
}

func TestLoadMissingSlot(t *testing.T) {
	store := testStore(t)

	entry, err := store.LoadSlot("nope")
	if err != nil {
		t.Fatalf("LoadSlot: %v", err)
	}
	if entry != nil {
		t.Errorf("missing slot returned %+v", entry)
	}
}

func TestDeleteSlot(t *testing.T) {
	store := testStore(t)

	st := sim.NewState(sim.DefaultTuning())
	if err := store.SaveSlot("doomed", "easy", 1, st); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteSlot("doomed"); err != nil {
		t.Fatalf("DeleteSlot: %v", err)
	}
	entry, err := store.LoadSlot("doomed")
	if err != nil || entry != nil {
		t.Errorf("slot survived deletion: %+v, %v", entry, err)
	}

	// Deleting a missing slot is not an error.
	if err := store.DeleteSlot("doomed"); err != nil {
		t.Errorf("double delete: %v", err)
	}
}

func TestTopRunsOrdering(t *testing.T) {
	store := testStore(t)

	runs := []RunRecord{
		{Difficulty: "normal", Quarters: 8, TotalProfit: 100, EndReason: "ousted"},
		{Difficulty: "hard", Quarters: 20, TotalProfit: 50, EndReason: "ousted"},
		{Difficulty: "normal", Quarters: 8, TotalProfit: 300, EndReason: "retired"},
		{Difficulty: "easy", Quarters: 15, TotalProfit: 200, EndReason: "ousted"},
	}
	for _, r := range runs {
		if _, err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	top, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopRuns = %d entries, want 3", len(top))
	}
	// Longest tenure first, profit as the tiebreaker.
	if top[0].Quarters != 20 || top[1].Quarters != 15 {
		t.Errorf("ordering wrong: %+v", top)
	}
	if top[2].Quarters != 8 || top[2].TotalProfit != 300 {
		t.Errorf("tiebreaker wrong: %+v", top[2])
	}

	// Non-positive limits fall back to the default page size.
	all, err := store.TopRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Errorf("TopRuns(0) = %d entries, want 4", len(all))
	}
}

func TestRunStats(t *testing.T) {
	store := testStore(t)

	// Empty database aggregates to zeros, not an error.
	stats, err := store.GetRunStats()
	if err != nil {
		t.Fatalf("GetRunStats: %v", err)
	}
	if stats.RunsCount != 0 || stats.BestQuarters != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	for _, r := range []RunRecord{
		{Difficulty: "normal", Quarters: 10, TotalProfit: 100, EndReason: "retired"},
		{Difficulty: "normal", Quarters: 6, TotalProfit: -20, EndReason: "ousted"},
	} {
		if _, err := store.RecordRun(r); err != nil {
			t.Fatal(err)
		}
	}

	stats, err = store.GetRunStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.RunsCount != 2 || stats.BestQuarters != 10 || stats.TotalProfit != 80 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgQuarters != 8 {
		t.Errorf("AvgQuarters = %v, want 8", stats.AvgQuarters)
	}
	if stats.Retirements != 1 {
		t.Errorf("Retirements = %d, want 1", stats.Retirements)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns: %v", err)
	}
	stats, err = store.GetRunStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.RunsCount != 0 {
		t.Errorf("runs survived ClearRuns: %+v", stats)
	}
}
