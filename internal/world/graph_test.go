package world

import (
	"io"
	"log/slog"
	"math"
	"reflect"
	"testing"

	"starmap-server/internal/shared/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// buildChain creates systems 1..n at x = 100*i on a horizontal line, connected
// in a chain 1-2-...-n.
func buildChain(t *testing.T, n int) *Graph {
	t.Helper()
	g := NewGraph(testLogger())
	for i := 1; i <= n; i++ {
		g.AddSystem(&StarSystem{ID: i, X: float64(100 * i), Y: 500, Tags: NewTagSet()})
	}
	for i := 1; i < n; i++ {
		if _, err := g.Connect(i, i+1); err != nil {
			t.Fatalf("Connect(%d, %d) failed: %v", i, i+1, err)
		}
	}
	return g
}

func TestRouteID(t *testing.T) {
	if got := RouteID(3, 7); got != 30007 {
		t.Errorf("RouteID(3, 7) = %d, want 30007", got)
	}
	if RouteID(7, 3) != RouteID(3, 7) {
		t.Error("RouteID must be direction independent")
	}
	if got := RouteID(12, 4); got != 40012 {
		t.Errorf("RouteID(12, 4) = %d, want 40012", got)
	}
}

func TestConnectDerivesRoute(t *testing.T) {
	g := NewGraph(testLogger())
	g.AddSystem(&StarSystem{ID: 1, X: 0, Y: 0})
	g.AddSystem(&StarSystem{ID: 2, X: 300, Y: 400})

	r, err := g.Connect(2, 1)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if r.SystemA != 1 || r.SystemB != 2 {
		t.Errorf("route endpoints = (%d, %d), want (1, 2)", r.SystemA, r.SystemB)
	}
	if r.ID != RouteID(1, 2) {
		t.Errorf("route id = %d, want %d", r.ID, RouteID(1, 2))
	}
	if r.Distance != 500 {
		t.Errorf("route distance = %g, want 500", r.Distance)
	}

	// Both endpoints must list each other.
	s1, _ := g.System(1)
	s2, _ := g.System(2)
	if !reflect.DeepEqual(s1.Neighbors, []int{2}) {
		t.Errorf("system 1 neighbors = %v, want [2]", s1.Neighbors)
	}
	if !reflect.DeepEqual(s2.Neighbors, []int{1}) {
		t.Errorf("system 2 neighbors = %v, want [1]", s2.Neighbors)
	}

	// Reconnecting the same pair in either direction returns the existing route.
	again, err := g.Connect(1, 2)
	if err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}
	if again != r {
		t.Error("reconnecting an existing pair must return the same route")
	}
	if g.RouteCount() != 1 {
		t.Errorf("route count = %d, want 1", g.RouteCount())
	}
}

func TestConnectUnknownSystem(t *testing.T) {
	g := NewGraph(testLogger())
	g.AddSystem(&StarSystem{ID: 1})

	if _, err := g.Connect(1, 99); err == nil {
		t.Fatal("expected error connecting to unknown system")
	} else if errors.GetType(err) != errors.ErrorTypeNotFound {
		t.Errorf("error type = %s, want not_found", errors.GetType(err))
	}
}

func TestNeighborsStaySorted(t *testing.T) {
	g := NewGraph(testLogger())
	for _, id := range []int{1, 5, 3, 9, 7} {
		g.AddSystem(&StarSystem{ID: id})
	}
	for _, id := range []int{9, 3, 7, 5} {
		if _, err := g.Connect(1, id); err != nil {
			t.Fatalf("Connect(1, %d) failed: %v", id, err)
		}
	}

	s, _ := g.System(1)
	want := []int{3, 5, 7, 9}
	if !reflect.DeepEqual(s.Neighbors, want) {
		t.Errorf("neighbors = %v, want %v", s.Neighbors, want)
	}
}

func TestShortestPath(t *testing.T) {
	// 1-2-3-4-5 chain plus a 1-5 shortcut.
	g := buildChain(t, 5)
	if _, err := g.Connect(1, 5); err != nil {
		t.Fatalf("Connect(1, 5) failed: %v", err)
	}

	tests := []struct {
		name     string
		from, to int
		want     []int
	}{
		{"shortcut wins", 2, 5, []int{2, 1, 5}},
		{"direct edge", 1, 5, []int{1, 5}},
		{"same system", 3, 3, []int{3}},
		{"mid chain", 2, 4, []int{2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.ShortestPath(tt.from, tt.to); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ShortestPath(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	g := NewGraph(testLogger())
	g.AddSystem(&StarSystem{ID: 1})
	g.AddSystem(&StarSystem{ID: 2})

	if got := g.ShortestPath(1, 2); got != nil {
		t.Errorf("ShortestPath across disconnected systems = %v, want nil", got)
	}
	if got := g.ShortestPath(1, 99); got != nil {
		t.Errorf("ShortestPath to unknown system = %v, want nil", got)
	}
}

func TestPathAggregates(t *testing.T) {
	g := buildChain(t, 4)
	for i := 1; i < 4; i++ {
		r, _ := g.Route(i, i+1)
		r.Hazard = i
	}

	path := []int{1, 2, 3, 4}
	dist, err := g.PathDistance(path)
	if err != nil {
		t.Fatalf("PathDistance failed: %v", err)
	}
	if math.Abs(dist-300) > 1e-9 {
		t.Errorf("path distance = %g, want 300", dist)
	}

	hazard, err := g.PathHazard(path)
	if err != nil {
		t.Fatalf("PathHazard failed: %v", err)
	}
	if hazard != 6 {
		t.Errorf("path hazard = %d, want 6", hazard)
	}

	if _, err := g.PathDistance([]int{1, 3}); err == nil {
		t.Error("expected error for non-adjacent path step")
	}
}

func TestSetSystemMetricClamps(t *testing.T) {
	g := buildChain(t, 2)

	if err := g.SetSystemMetric(1, MetricStability, 99); err != nil {
		t.Fatalf("SetSystemMetric failed: %v", err)
	}
	s, _ := g.System(1)
	if s.Metrics.Stability != MetricMax {
		t.Errorf("stability = %d, want clamped to %d", s.Metrics.Stability, MetricMax)
	}

	if err := g.SetSystemMetric(1, MetricCrime, -3); err != nil {
		t.Fatalf("SetSystemMetric failed: %v", err)
	}
	if s.Metrics.CriminalActivity != MetricMin {
		t.Errorf("criminal_activity = %d, want clamped to %d", s.Metrics.CriminalActivity, MetricMin)
	}

	if err := g.SetSystemMetric(1, "bogus", 1); err == nil {
		t.Error("expected error for unknown metric name")
	}
	if err := g.SetSystemMetric(42, MetricStability, 1); err == nil {
		t.Error("expected error for unknown system")
	}
}

func TestAdjustSystemMetric(t *testing.T) {
	g := buildChain(t, 2)
	s, _ := g.System(1)
	s.Metrics.SecurityLevel = 3

	if err := g.AdjustSystemMetric(1, MetricSecurity, -1); err != nil {
		t.Fatalf("AdjustSystemMetric failed: %v", err)
	}
	if s.Metrics.SecurityLevel != 2 {
		t.Errorf("security = %d, want 2", s.Metrics.SecurityLevel)
	}

	if err := g.AdjustSystemMetric(1, MetricSecurity, +10); err != nil {
		t.Fatalf("AdjustSystemMetric failed: %v", err)
	}
	if s.Metrics.SecurityLevel != MetricMax {
		t.Errorf("security = %d, want clamped to %d", s.Metrics.SecurityLevel, MetricMax)
	}
}

func TestSetSystemOwnerPropagatesToStations(t *testing.T) {
	g := buildChain(t, 2)
	g.AddFaction(&Faction{ID: 1, Name: "Terran Accord"})
	g.AddFaction(&Faction{ID: 2, Name: "Veil Syndicate"})

	if err := g.AddStation(&Station{ID: 1, SystemID: 1, OwnerID: 1}); err != nil {
		t.Fatalf("AddStation failed: %v", err)
	}

	if err := g.SetSystemOwner(1, 2); err != nil {
		t.Fatalf("SetSystemOwner failed: %v", err)
	}
	s, _ := g.System(1)
	st, _ := g.Station(1)
	if s.OwnerID != 2 || st.OwnerID != 2 {
		t.Errorf("owners = (system %d, station %d), want both 2", s.OwnerID, st.OwnerID)
	}

	// Releasing to unowned is always legal.
	if err := g.SetSystemOwner(1, 0); err != nil {
		t.Fatalf("SetSystemOwner(0) failed: %v", err)
	}
	if s.OwnerID != 0 || st.OwnerID != 0 {
		t.Errorf("owners after release = (system %d, station %d), want both 0", s.OwnerID, st.OwnerID)
	}

	if err := g.SetSystemOwner(1, 42); err == nil {
		t.Error("expected error for unknown faction")
	}
}

func TestSystemQueries(t *testing.T) {
	g := buildChain(t, 4)
	g.AddFaction(&Faction{ID: 1})

	s1, _ := g.System(1)
	s1.OwnerID = 1
	s1.Tags.Add(TagHub)
	s1.Tags.Add(TagCore)
	s1.Metrics.EconomicActivity = 5

	s3, _ := g.System(3)
	s3.Tags.Add(TagCore)
	s3.Metrics.EconomicActivity = 2

	if got := g.SystemsByFaction(1); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("SystemsByFaction(1) = %v systems, want [1]", ids(got))
	}
	if got := g.SystemsByFaction(0); len(got) != 3 {
		t.Errorf("SystemsByFaction(0) returned %d systems, want 3", len(got))
	}
	if got := g.SystemsWithAnyTag(TagHub, TagCore); !reflect.DeepEqual(ids(got), []int{1, 3}) {
		t.Errorf("SystemsWithAnyTag = %v, want [1 3]", ids(got))
	}
	if got := g.SystemsWithAllTags(TagHub, TagCore); !reflect.DeepEqual(ids(got), []int{1}) {
		t.Errorf("SystemsWithAllTags = %v, want [1]", ids(got))
	}

	got, err := g.SystemsByMetricRange(MetricEconomy, 3, 5)
	if err != nil {
		t.Fatalf("SystemsByMetricRange failed: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int{1}) {
		t.Errorf("SystemsByMetricRange = %v, want [1]", ids(got))
	}
	if _, err := g.SystemsByMetricRange("bogus", 0, 5); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestRouteQueries(t *testing.T) {
	g := buildChain(t, 4)
	r12, _ := g.Route(1, 2)
	r12.Hazard = 4
	r12.Tags.Add(TagDangerous)
	r23, _ := g.Route(2, 3)
	r23.Hazard = 2

	if got := g.RoutesByTag(TagDangerous); len(got) != 1 || got[0].ID != r12.ID {
		t.Errorf("RoutesByTag(dangerous) returned %d routes", len(got))
	}
	if got := g.RoutesByHazard(2); len(got) != 2 {
		t.Errorf("RoutesByHazard(2) returned %d routes, want 2", len(got))
	}
	if got := g.RoutesByHazard(5); len(got) != 0 {
		t.Errorf("RoutesByHazard(5) returned %d routes, want 0", len(got))
	}
}

func TestTagSet(t *testing.T) {
	ts := NewTagSet("b", "a")
	ts.Add("c")
	ts.Remove("b")

	if !ts.Has("a") || !ts.Has("c") || ts.Has("b") {
		t.Errorf("unexpected tag membership: %v", ts)
	}
	if got := ts.Sorted(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Sorted() = %v, want [a c]", got)
	}
}

func ids(systems []*StarSystem) []int {
	out := make([]int, len(systems))
	for i, s := range systems {
		out[i] = s.ID
	}
	return out
}
