package paginate

import "testing"

func TestFromQuery_PageAndResults(t *testing.T) {
	w := FromQuery(2, 5)
	if w.Skip != 5 || w.Limit != 5 {
		t.Fatalf("expected {skip:5, limit:5}, got %+v", w)
	}
}

func TestFromQuery_PageOnly_DefaultsLimit(t *testing.T) {
	w := FromQuery(1, 0)
	if w.Skip != 0 || w.Limit != 10 {
		t.Fatalf("expected {skip:0, limit:10}, got %+v", w)
	}
}

func TestFromQuery_ResultsOnly_NoSkip(t *testing.T) {
	w := FromQuery(0, 7)
	if w.Skip != 0 || w.Limit != 7 {
		t.Fatalf("expected {skip:0, limit:7}, got %+v", w)
	}
	if !w.Constrained() {
		t.Fatal("window with limit must be constrained")
	}
}

func TestFromQuery_Neither_Unconstrained(t *testing.T) {
	w := FromQuery(0, 0)
	if w.Constrained() {
		t.Fatalf("expected unconstrained window, got %+v", w)
	}
}

func TestFromQuery_LaterPages(t *testing.T) {
	w := FromQuery(4, 0)
	if w.Skip != 30 || w.Limit != 10 {
		t.Fatalf("expected {skip:30, limit:10}, got %+v", w)
	}
}
