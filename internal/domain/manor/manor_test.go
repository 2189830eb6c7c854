package manor

import "testing"

func TestResolveMatchesAliases(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"go to the library", "library"},
		{"head down to the basement", "cellar"},
		{"the chapel, quickly", "chapel"},
		{"back to the front door", "foyer"},
	}
	for _, c := range cases {
		loc, ok := Resolve(c.text)
		if !ok || loc.ID != c.want {
			t.Errorf("Expected %q to resolve to %q, got %q ok=%v", c.text, c.want, loc.ID, ok)
		}
	}

	if _, ok := Resolve("go to the greenhouse"); ok {
		t.Error("Expected no match for a room the manor does not have")
	}
}

func TestConnectionsAreBidirectional(t *testing.T) {
	for id, loc := range Registry {
		for _, conn := range loc.Connections {
			other, ok := Get(conn)
			if !ok {
				t.Errorf("Room %q connects to unknown room %q", id, conn)
				continue
			}
			if !Connected(other.ID, id) {
				t.Errorf("Expected %q -> %q to run both ways", id, conn)
			}
		}
	}
}

func TestStartLocationExists(t *testing.T) {
	loc, ok := Get(StartLocation)
	if !ok {
		t.Fatalf("Start location %q missing from the manor", StartLocation)
	}
	if len(loc.Connections) == 0 {
		t.Errorf("Expected the start room to lead somewhere")
	}
}

func TestComfortingRoomsSoftenTheHouse(t *testing.T) {
	for id, loc := range Registry {
		if !loc.Comforting {
			continue
		}
		if loc.FearFactor >= 1.0 {
			t.Errorf("Expected comforting room %q to dampen scares, factor %v", id, loc.FearFactor)
		}
		if loc.DecayScale >= 1.0 {
			t.Errorf("Expected comforting room %q to slow the churn of fear, scale %v", id, loc.DecayScale)
		}
	}

	cellar, _ := Get("cellar")
	if cellar.FearFactor <= 1.0 {
		t.Errorf("Expected the cellar to amplify scares, factor %v", cellar.FearFactor)
	}
}
