package ir

import (
	"strconv"
	"strings"

	"github.com/tdlang/compiler/ast"
)

// Generate lowers a validated *ast.Program into IR in source order. It is
// pure: re-running it on the same program yields byte-for-byte identical
// instructions.
func Generate(prog *ast.Program) []Instruction {
	var code []Instruction

	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *ast.Map:
			code = append(code, genMap(d))
		case *ast.Enemy:
			code = append(code, genEnemy(d))
		case *ast.Tower:
			code = append(code, genTower(d))
		case *ast.Wave:
			code = append(code, genWave(d)...)
		case *ast.Place:
			code = append(code, genPlace(d))
		}
	}

	return code
}

func genMap(m *ast.Map) Instruction {
	parts := make([]string, len(m.Path))
	for i, pt := range m.Path {
		parts[i] = strconv.Itoa(pt.X) + "," + strconv.Itoa(pt.Y)
	}

	return Instruction{
		Op:       DEFINE_MAP,
		Operands: []string{m.Name},
		Meta: map[string]Value{
			"width":  Int(m.Width),
			"height": Int(m.Height),
			"path":   String(strings.Join(parts, ";")),
		},
	}
}

func genEnemy(e *ast.Enemy) Instruction {
	return Instruction{
		Op:       DEFINE_ENEMY,
		Operands: []string{e.Name},
		Meta: map[string]Value{
			"hp":     Int(e.HP),
			"speed":  Real(e.Speed),
			"reward": Int(e.Reward),
		},
	}
}

func genTower(t *ast.Tower) Instruction {
	return Instruction{
		Op:       DEFINE_TOWER,
		Operands: []string{t.Name},
		Meta: map[string]Value{
			"range":     Int(t.Range),
			"damage":    Int(t.Damage),
			"fire_rate": Real(t.FireRate),
			"cost":      Int(t.Cost),
		},
	}
}

func genWave(w *ast.Wave) []Instruction {
	code := make([]Instruction, 0, 1+len(w.Spawns))

	code = append(code, Instruction{
		Op:       DEFINE_WAVE,
		Operands: []string{w.Name},
	})

	for _, s := range w.Spawns {
		code = append(code, Instruction{
			Op:       SPAWN_ENEMY,
			Operands: []string{w.Name, s.EnemyType},
			Meta: map[string]Value{
				"count":    Int(s.Count),
				"start":    Int(s.Start),
				"interval": Int(s.Interval),
			},
		})
	}

	return code
}

func genPlace(p *ast.Place) Instruction {
	return Instruction{
		Op:       PLACE_TOWER,
		Operands: []string{p.TowerType},
		Meta: map[string]Value{
			"x": Int(p.X),
			"y": Int(p.Y),
		},
	}
}
