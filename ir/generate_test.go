package ir

import (
	"testing"

	"github.com/tdlang/compiler/ast"
)

func TestGenerateMapPathJoining(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Map{Name: "M", Width: 3, Height: 3, Path: []ast.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}},
	}}

	code := Generate(prog)
	if len(code) != 1 {
		t.Fatalf("got %d instructions, want 1", len(code))
	}

	in := code[0]
	if in.Op != DEFINE_MAP || in.Operands[0] != "M" {
		t.Fatalf("got %+v", in)
	}

	path, ok := in.Get("path")
	if !ok || path.Str != "0,0;1,0;2,0" {
		t.Fatalf("path = %+v", path)
	}
}

func TestGenerateWaveGroupingInvariant(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Wave{Name: "W", Spawns: []ast.Spawn{
			{EnemyType: "Goblin", Count: 3, Start: 0, Interval: 1},
			{EnemyType: "Orc", Count: 1, Start: 5, Interval: 2},
		}},
	}}

	code := Generate(prog)
	if len(code) != 3 {
		t.Fatalf("got %d instructions, want 3", len(code))
	}

	if code[0].Op != DEFINE_WAVE || code[0].Operands[0] != "W" {
		t.Fatalf("code[0] = %+v", code[0])
	}

	for _, in := range code[1:] {
		if in.Op != SPAWN_ENEMY || in.Operands[0] != "W" {
			t.Fatalf("expected SPAWN_ENEMY in_wave W, got %+v", in)
		}
	}
}

func TestGenerateDeclarationOrderPreserved(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Enemy{Name: "A", HP: 1, Speed: 1, Reward: 0},
		&ast.Enemy{Name: "B", HP: 1, Speed: 1, Reward: 0},
		&ast.Tower{Name: "X", Range: 1, Damage: 1, FireRate: 1, Cost: 0},
		&ast.Tower{Name: "Y", Range: 1, Damage: 1, FireRate: 1, Cost: 0},
	}}

	code := Generate(prog)

	var enemyNames, towerNames []string
	for _, in := range code {
		switch in.Op {
		case DEFINE_ENEMY:
			enemyNames = append(enemyNames, in.Operands[0])
		case DEFINE_TOWER:
			towerNames = append(towerNames, in.Operands[0])
		}
	}

	if len(enemyNames) != 2 || enemyNames[0] != "A" || enemyNames[1] != "B" {
		t.Fatalf("enemy order = %v", enemyNames)
	}
	if len(towerNames) != 2 || towerNames[0] != "X" || towerNames[1] != "Y" {
		t.Fatalf("tower order = %v", towerNames)
	}
}

func TestGenerateIsPure(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.Enemy{Name: "Goblin", HP: 10, Speed: 1.5, Reward: 5},
	}}

	a := Generate(prog)
	b := Generate(prog)

	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}

	for i := range a {
		if a[i].Op != b[i].Op || a[i].Operands[0] != b[i].Operands[0] {
			t.Fatalf("mismatch at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}
