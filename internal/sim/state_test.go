package sim

import "testing"

func TestMetersWithClamps(t *testing.T) {
	ms := healthyMeters()

	ms = ms.With(MeterMorale, 60)
	if ms.Morale != 100 {
		t.Errorf("Morale = %d, want clamped to 100", ms.Morale)
	}

	ms = ms.With(MeterRunway, -80)
	if ms.Runway != 0 {
		t.Errorf("Runway = %d, want clamped to 0", ms.Runway)
	}

	// Other meters untouched.
	if ms.Delivery != 50 || ms.Governance != 50 || ms.Alignment != 50 {
		t.Errorf("unrelated meters changed: %+v", ms)
	}
}

func TestMetersAverageAndLowest(t *testing.T) {
	ms := Meters{Delivery: 10, Morale: 30, Governance: 50, Alignment: 70, Runway: 90}
	if got := ms.Average(); got != 50 {
		t.Errorf("Average = %d, want 50", got)
	}
	if got := ms.Lowest(); got != 10 {
		t.Errorf("Lowest = %d, want 10", got)
	}
}

func TestPressureCaps(t *testing.T) {
	tests := []struct{ quarters, want int }{
		{0, 0}, {1, 0}, {2, 1}, {7, 3}, {16, 8}, {40, 8},
	}
	for _, tt := range tests {
		ten := Tenure{QuartersSurvived: tt.quarters}
		if got := ten.Pressure(); got != tt.want {
			t.Errorf("Pressure(%d quarters) = %d, want %d", tt.quarters, got, tt.want)
		}
	}
}

func TestWithoutCardCopies(t *testing.T) {
	hand := []string{"a", "b", "c"}
	got := withoutCard(hand, "b")

	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("withoutCard = %v, want [a c]", got)
	}
	if len(hand) != 3 {
		t.Errorf("input hand mutated: %v", hand)
	}
}

func TestPushProfitWindow(t *testing.T) {
	var h []int
	for i := 1; i <= 10; i++ {
		h = pushProfit(h, i, 8)
	}
	if len(h) != 8 {
		t.Fatalf("window length = %d, want 8", len(h))
	}
	if h[0] != 3 || h[7] != 10 {
		t.Errorf("window = %v, want [3..10]", h)
	}
}

func TestNewState(t *testing.T) {
	tun := DefaultTuning()
	st := NewState(tun)

	if st.Quarter != 1 {
		t.Errorf("Quarter = %d, want 1", st.Quarter)
	}
	if st.Phase != PhaseDemand {
		t.Errorf("Phase = %v, want demand", st.Phase)
	}
	if st.Capital != tun.StartCapital {
		t.Errorf("Capital = %d, want %d", st.Capital, tun.StartCapital)
	}
	if st.Tenure.Favor != tun.StartFavor {
		t.Errorf("Favor = %d, want %d", st.Tenure.Favor, tun.StartFavor)
	}
	if st.Meters.Average() != tun.StartMeters {
		t.Errorf("meter average = %d, want %d", st.Meters.Average(), tun.StartMeters)
	}
	if st.LastAffinity != MeterNone {
		t.Errorf("LastAffinity = %v, want none", st.LastAffinity)
	}
	if st.Terminal() {
		t.Error("fresh state must not be terminal")
	}
}
