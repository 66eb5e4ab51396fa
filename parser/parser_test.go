package parser

import (
	"testing"

	"github.com/tdlang/compiler/ast"
)

func TestParseMinimalMap(t *testing.T) {
	src := `map M { size = (3, 3); path = [(0,0),(1,0),(2,0)]; }`

	prog, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(prog.Decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(prog.Decls))
	}

	m, ok := prog.Decls[0].(*ast.Map)
	if !ok {
		t.Fatalf("decl is %T, want *ast.Map", prog.Decls[0])
	}

	if m.Name != "M" || m.Width != 3 || m.Height != 3 {
		t.Fatalf("got %+v", m)
	}

	want := []ast.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	if len(m.Path) != len(want) {
		t.Fatalf("path len = %d, want %d", len(m.Path), len(want))
	}
	for i := range want {
		if m.Path[i] != want[i] {
			t.Fatalf("path[%d] = %+v, want %+v", i, m.Path[i], want[i])
		}
	}
}

func TestParsePathOptionalCommas(t *testing.T) {
	src := `map M { size = (2, 2); path = [(0,0) (1,1)]; }`

	prog, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	m := prog.Decls[0].(*ast.Map)
	if len(m.Path) != 2 {
		t.Fatalf("path len = %d, want 2", len(m.Path))
	}
}

func TestParseEnemyAndTower(t *testing.T) {
	src := `
enemy Goblin { hp = 10; speed = 1.5; reward = 5; }
tower Archer { range = 3; damage = 2; fire_rate = 0.5; cost = 10; }
`

	prog, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(prog.Decls) != 2 {
		t.Fatalf("got %d decls, want 2", len(prog.Decls))
	}

	e := prog.Decls[0].(*ast.Enemy)
	if e.Name != "Goblin" || e.HP != 10 || e.Speed != 1.5 || e.Reward != 5 {
		t.Fatalf("got %+v", e)
	}

	tw := prog.Decls[1].(*ast.Tower)
	if tw.Name != "Archer" || tw.Range != 3 || tw.Damage != 2 || tw.FireRate != 0.5 || tw.Cost != 10 {
		t.Fatalf("got %+v", tw)
	}
}

func TestParseWaveWithSpawns(t *testing.T) {
	src := `
wave W {
	spawn(Goblin, count=3, start=0, interval=1);
	spawn(Orc, count=1, start=5, interval=2);
}
`

	prog, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	w := prog.Decls[0].(*ast.Wave)
	if w.Name != "W" || len(w.Spawns) != 2 {
		t.Fatalf("got %+v", w)
	}

	if w.Spawns[0] != (ast.Spawn{EnemyType: "Goblin", Count: 3, Start: 0, Interval: 1}) {
		t.Fatalf("spawn[0] = %+v", w.Spawns[0])
	}
}

func TestParsePlace(t *testing.T) {
	src := `place Archer at (1, 2);`

	prog, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	p := prog.Decls[0].(*ast.Place)
	if p.TowerType != "Archer" || p.X != 1 || p.Y != 2 {
		t.Fatalf("got %+v", p)
	}
}

func TestParseAttributeNameIsPositionalNotReserved(t *testing.T) {
	// The grammar never checks enemy/tower attribute labels against a
	// reserved set; any IDENT works in each position.
	src := `enemy Goblin { whatever = 10; anything = 1.5; blah = 5; }`

	prog, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	e := prog.Decls[0].(*ast.Enemy)
	if e.HP != 10 || e.Speed != 1.5 || e.Reward != 5 {
		t.Fatalf("got %+v", e)
	}
}

func TestParseUnexpectedTokenFails(t *testing.T) {
	_, err := Parse([]byte(`map M { size = (3 3); path = []; }`))
	if err == nil {
		t.Fatal("expected error for missing comma")
	}
}

func TestParseUnknownDeclarationFails(t *testing.T) {
	_, err := Parse([]byte(`bogus X { }`))
	if err == nil {
		t.Fatal("expected error for unknown declaration keyword")
	}
}
