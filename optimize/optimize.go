// Package optimize runs the four fixed-order IR optimization passes:
// duplicate definition removal, redundant spawn merging, constant folding,
// and dead code elimination.
package optimize

import (
	"context"
	"strconv"

	"tlog.app/go/tlog"

	"github.com/tdlang/compiler/ir"
)

// Run applies all four passes in order and returns a new instruction
// sequence; the input is never mutated.
func Run(ctx context.Context, in []ir.Instruction) []ir.Instruction {
	out := in

	out = removeDuplicateDefinitions(ctx, out)
	out = mergeRedundantSpawns(ctx, out)
	out = foldConstants(ctx, out)
	out = eliminateDeadCode(ctx, out)

	return out
}

// isDefinition reports whether op is one of the four DEFINE_* opcodes that
// duplicate-definition removal and the definition-key scheme apply to.
func isDefinition(op ir.Opcode) bool {
	switch op {
	case ir.DEFINE_MAP, ir.DEFINE_ENEMY, ir.DEFINE_TOWER, ir.DEFINE_WAVE:
		return true
	default:
		return false
	}
}

func definitionKey(in ir.Instruction) string {
	var prefix string

	switch in.Op {
	case ir.DEFINE_MAP:
		prefix = "MAP:"
	case ir.DEFINE_ENEMY:
		prefix = "ENEMY:"
	case ir.DEFINE_TOWER:
		prefix = "TOWER:"
	case ir.DEFINE_WAVE:
		prefix = "WAVE:"
	default:
		prefix = "UNKNOWN:"
	}

	if len(in.Operands) == 0 {
		return prefix
	}

	return prefix + in.Operands[0]
}

// removeDuplicateDefinitions keeps the first DEFINE_{MAP,ENEMY,TOWER,WAVE}
// per KIND:name key and drops later ones. This is defensive: sema already
// rejects duplicate names, so in practice this pass is a no-op.
func removeDuplicateDefinitions(ctx context.Context, in []ir.Instruction) []ir.Instruction {
	out := make([]ir.Instruction, 0, len(in))
	seen := map[string]bool{}

	for _, i := range in {
		if isDefinition(i.Op) {
			key := definitionKey(i)

			if seen[key] {
				tlog.SpanFromContext(ctx).Printw("removing duplicate definition", "key", key)
				continue
			}

			seen[key] = true
		}

		out = append(out, i)
	}

	return out
}

// mergeRedundantSpawns merges SPAWN_ENEMY instructions that share a
// wave|enemy|start|interval key by summing their counts into the earliest
// occurrence. The key embeds the wave name, so a merge can never reach
// across a DEFINE_WAVE boundary, preserving the wave-grouping invariant.
func mergeRedundantSpawns(ctx context.Context, in []ir.Instruction) []ir.Instruction {
	out := make([]ir.Instruction, 0, len(in))
	indexOf := map[string]int{}

	for _, i := range in {
		if i.Op != ir.SPAWN_ENEMY || len(i.Operands) < 2 {
			out = append(out, i)
			continue
		}

		wave, enemy := i.Operands[0], i.Operands[1]
		start, _ := i.Get("start")
		interval, _ := i.Get("interval")

		key := wave + "|" + enemy + "|" + strconv.Itoa(start.Int) + "|" + strconv.Itoa(interval.Int)

		if idx, ok := indexOf[key]; ok {
			existing := out[idx].Clone()
			count, _ := existing.Get("count")
			added, _ := i.Get("count")
			existing.Meta["count"] = ir.Int(count.Int + added.Int)
			out[idx] = existing

			tlog.SpanFromContext(ctx).Printw("merged redundant spawn", "wave", wave, "enemy", enemy)

			continue
		}

		indexOf[key] = len(out)
		out = append(out, i)
	}

	return out
}

// foldConstants attaches dps to DEFINE_TOWER instructions and
// total_duration to SPAWN_ENEMY instructions, when their inputs are
// present. total_duration treats interval as per-spawn time rather than
// inter-spawn gap, so it overestimates true spawn-window duration by one
// interval; that mirrors the reference tool's original arithmetic and is
// preserved here for bit-identical output.
func foldConstants(ctx context.Context, in []ir.Instruction) []ir.Instruction {
	out := make([]ir.Instruction, len(in))

	for idx, i := range in {
		n := i.Clone()

		switch i.Op {
		case ir.DEFINE_TOWER:
			damage, hasDamage := i.Get("damage")
			fireRate, hasFireRate := i.Get("fire_rate")

			if hasDamage && hasFireRate {
				n.Meta["dps"] = ir.Real(float64(damage.Int) * fireRate.Real)
			}
		case ir.SPAWN_ENEMY:
			count, hasCount := i.Get("count")
			interval, hasInterval := i.Get("interval")

			if hasCount && hasInterval {
				n.Meta["total_duration"] = ir.Int(count.Int * interval.Int)
			}
		}

		out[idx] = n
	}

	return out
}

// eliminateDeadCode drops DEFINE_ENEMY and DEFINE_TOWER instructions whose
// name is never referenced by a surviving SPAWN_ENEMY or PLACE_TOWER, plus
// any remaining NOP. Map and wave definitions, and every spawn/place
// instruction, always survive: they are references or structural anchors,
// not prunable definitions.
func eliminateDeadCode(ctx context.Context, in []ir.Instruction) []ir.Instruction {
	referencedEnemies := map[string]bool{}
	referencedTowers := map[string]bool{}

	for _, i := range in {
		switch i.Op {
		case ir.SPAWN_ENEMY:
			if len(i.Operands) > 1 {
				referencedEnemies[i.Operands[1]] = true
			}
		case ir.PLACE_TOWER:
			if len(i.Operands) > 0 {
				referencedTowers[i.Operands[0]] = true
			}
		}
	}

	out := make([]ir.Instruction, 0, len(in))

	for _, i := range in {
		switch {
		case i.Op == ir.DEFINE_ENEMY && len(i.Operands) > 0 && !referencedEnemies[i.Operands[0]]:
			tlog.SpanFromContext(ctx).Printw("dce: removing unreferenced enemy", "name", i.Operands[0])
			continue
		case i.Op == ir.DEFINE_TOWER && len(i.Operands) > 0 && !referencedTowers[i.Operands[0]]:
			tlog.SpanFromContext(ctx).Printw("dce: removing unreferenced tower", "name", i.Operands[0])
			continue
		case i.Op == ir.NOP:
			continue
		}

		out = append(out, i)
	}

	return out
}
