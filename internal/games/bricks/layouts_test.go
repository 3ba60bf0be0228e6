package bricks

import (
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/tui-bricks/internal/registry"
)

func TestParseMap(t *testing.T) {
	got, err := ParseMap([]string{
		"#.H",
		" 2",
	}, 3)
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	want := []registry.Placement{
		{Col: 0, Row: 0, Stage: 0},
		{Col: 1, Row: 1, Stage: 1},
		{Col: 2, Row: 0, Stage: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("ParseMap = %+v, expected %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placement %d = %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestParseMapErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"unknown cell", []string{"#x#"}},
		{"stage out of range", []string{"4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMap(tt.rows, 3); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBuiltinLayoutsFitDefaultGrid(t *testing.T) {
	p := registry.Params{Cols: 20, Rows: 10, Stages: 3, Density: 0.8}
	for _, info := range registry.List() {
		if info.ID == "map" {
			continue
		}
		t.Run(info.ID, func(t *testing.T) {
			l, err := registry.Create(info.ID)
			if err != nil {
				t.Fatal(err)
			}
			pl, err := l.Place(p, rand.New(rand.NewPCG(1, 2)))
			if err != nil {
				t.Fatalf("Place: %v", err)
			}
			if len(pl) == 0 {
				t.Error("layout placed no bricks")
			}
			if err := registry.Check(p, pl); err != nil {
				t.Errorf("Check: %v", err)
			}
		})
	}
}

func TestRandomLayoutDensity(t *testing.T) {
	p := registry.Params{Cols: 20, Rows: 10, Stages: 3}
	rng := rand.New(rand.NewPCG(7, 7))

	p.Density = 0
	if pl, _ := (randomLayout{}).Place(p, rng); len(pl) != 0 {
		t.Errorf("density 0 placed %d bricks", len(pl))
	}
	p.Density = 1
	if pl, _ := (randomLayout{}).Place(p, rng); len(pl) != 200 {
		t.Errorf("density 1 placed %d bricks, expected 200", len(pl))
	}
}

func TestStripedLayoutStages(t *testing.T) {
	p := registry.Params{Cols: 4, Rows: 3, Stages: 3}
	pl, err := (stripedLayout{}).Place(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(pl) != 12 {
		t.Fatalf("placed %d bricks, expected 12", len(pl))
	}
	for _, c := range pl {
		if c.Stage != (c.Col+c.Row)%3 {
			t.Errorf("cell (%d,%d) at stage %d", c.Col, c.Row, c.Stage)
		}
	}
}

func TestMapLayoutReadsConfigRows(t *testing.T) {
	l, err := registry.Create("map")
	if err != nil {
		t.Fatal(err)
	}
	p := registry.Params{Cols: 20, Rows: 2, Stages: 3, Map: []string{"..#", "H"}}
	pl, err := l.Place(p, nil)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(pl) != 2 || pl[0].Stage != 2 || pl[1].Col != 2 {
		t.Errorf("placements = %+v", pl)
	}
}
