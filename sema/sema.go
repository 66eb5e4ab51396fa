// Package sema implements the TDLang semantic analyzer: a single
// source-order walk over an *ast.Program that maintains four name tables
// and a reference to the most recently declared map.
package sema

import (
	"context"
	"fmt"

	"tlog.app/go/tlog"

	"github.com/tdlang/compiler/ast"
)

// SemanticError reports one violated rule from the language specification's
// semantic rule table (duplicate name, out-of-range value, undefined
// reference, placement outside bounds, placement before any map).
type SemanticError struct {
	Rule    string
	Message string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

func newError(rule, format string, args ...any) *SemanticError {
	return &SemanticError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// analyzer holds the four name tables and the walk's running state.
type analyzer struct {
	maps    map[string]*ast.Map
	enemies map[string]*ast.Enemy
	towers  map[string]*ast.Tower
	waves   map[string]*ast.Wave

	currentMap *ast.Map
}

// Analyze validates prog in declaration order, returning the first violated
// rule as a *SemanticError. It is fatal: validation stops at the first
// error, matching the language specification's "abort on first error"
// policy.
func Analyze(ctx context.Context, prog *ast.Program) error {
	a := &analyzer{
		maps:    map[string]*ast.Map{},
		enemies: map[string]*ast.Enemy{},
		towers:  map[string]*ast.Tower{},
		waves:   map[string]*ast.Wave{},
	}

	for _, d := range prog.Decls {
		var err error

		switch d := d.(type) {
		case *ast.Map:
			err = a.checkMap(ctx, d)
		case *ast.Enemy:
			err = a.checkEnemy(ctx, d)
		case *ast.Tower:
			err = a.checkTower(ctx, d)
		case *ast.Wave:
			err = a.checkWave(ctx, d)
		case *ast.Place:
			err = a.checkPlace(ctx, d)
		default:
			err = newError("internal", "unhandled declaration type %T", d)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (a *analyzer) checkMap(ctx context.Context, m *ast.Map) error {
	if _, dup := a.maps[m.Name]; dup {
		return newError("unique names", "duplicate map name %q", m.Name)
	}

	if m.Width <= 0 || m.Height <= 0 {
		return newError("map dimensions", "map %q has non-positive size %dx%d", m.Name, m.Width, m.Height)
	}

	for _, pt := range m.Path {
		if pt.X < 0 || pt.X >= m.Width || pt.Y < 0 || pt.Y >= m.Height {
			return newError("path in bounds", fmt.Sprintf("path point (%d,%d) out of map %q bounds", pt.X, pt.Y, m.Name))
		}
	}

	a.maps[m.Name] = m
	a.currentMap = m

	tlog.SpanFromContext(ctx).Printw("checked map", "name", m.Name, "width", m.Width, "height", m.Height)

	return nil
}

func (a *analyzer) checkEnemy(ctx context.Context, e *ast.Enemy) error {
	if _, dup := a.enemies[e.Name]; dup {
		return newError("unique names", "duplicate enemy name %q", e.Name)
	}

	if e.HP <= 0 {
		return newError("enemy attributes", fmt.Sprintf("enemy %q hp must be positive, got %d", e.Name, e.HP))
	}
	if e.Speed <= 0 {
		return newError("enemy attributes", fmt.Sprintf("enemy %q speed must be positive, got %v", e.Name, e.Speed))
	}
	if e.Reward < 0 {
		return newError("enemy attributes", fmt.Sprintf("enemy %q reward cannot be negative, got %d", e.Name, e.Reward))
	}

	a.enemies[e.Name] = e

	tlog.SpanFromContext(ctx).Printw("checked enemy", "name", e.Name)

	return nil
}

func (a *analyzer) checkTower(ctx context.Context, t *ast.Tower) error {
	if _, dup := a.towers[t.Name]; dup {
		return newError("unique names", "duplicate tower name %q", t.Name)
	}

	if t.Range <= 0 {
		return newError("tower attributes", fmt.Sprintf("tower %q range must be positive, got %d", t.Name, t.Range))
	}
	if t.Damage <= 0 {
		return newError("tower attributes", fmt.Sprintf("tower %q damage must be positive, got %d", t.Name, t.Damage))
	}
	if t.Cost < 0 {
		return newError("tower attributes", fmt.Sprintf("tower %q cost cannot be negative, got %d", t.Name, t.Cost))
	}
	if t.FireRate <= 0 {
		return newError("tower attributes", fmt.Sprintf("tower %q fire_rate must be positive, got %v", t.Name, t.FireRate))
	}

	a.towers[t.Name] = t

	tlog.SpanFromContext(ctx).Printw("checked tower", "name", t.Name)

	return nil
}

func (a *analyzer) checkWave(ctx context.Context, w *ast.Wave) error {
	if _, dup := a.waves[w.Name]; dup {
		return newError("unique names", "duplicate wave name %q", w.Name)
	}

	for _, s := range w.Spawns {
		if _, ok := a.enemies[s.EnemyType]; !ok {
			return newError("spawn references", fmt.Sprintf("wave %q spawns undefined enemy %q", w.Name, s.EnemyType))
		}

		if s.Count <= 0 {
			return newError("spawn attributes", fmt.Sprintf("wave %q spawn of %q has non-positive count %d", w.Name, s.EnemyType, s.Count))
		}
		if s.Start < 0 {
			return newError("spawn attributes", fmt.Sprintf("wave %q spawn of %q has negative start %d", w.Name, s.EnemyType, s.Start))
		}
		if s.Interval <= 0 {
			return newError("spawn attributes", fmt.Sprintf("wave %q spawn of %q has non-positive interval %d", w.Name, s.EnemyType, s.Interval))
		}
	}

	a.waves[w.Name] = w

	tlog.SpanFromContext(ctx).Printw("checked wave", "name", w.Name, "spawns", len(w.Spawns))

	return nil
}

func (a *analyzer) checkPlace(ctx context.Context, p *ast.Place) error {
	if _, ok := a.towers[p.TowerType]; !ok {
		return newError("placement reference", fmt.Sprintf("placing undefined tower type %q", p.TowerType))
	}

	if a.currentMap == nil {
		return newError("placement ordering", "placement appears before any map definition")
	}

	if p.X < 0 || p.X >= a.currentMap.Width || p.Y < 0 || p.Y >= a.currentMap.Height {
		return newError("placement in bounds", "Tower placement out of map bounds.")
	}

	tlog.SpanFromContext(ctx).Printw("checked placement", "tower", p.TowerType, "x", p.X, "y", p.Y)

	return nil
}
