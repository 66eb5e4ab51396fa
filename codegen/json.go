package codegen

import (
	"strconv"
	"strings"

	"github.com/nikandfor/hacked/hfmt"

	"github.com/tdlang/compiler/ir"
)

// JSON renders the gameConfig object described in the language
// specification's §6 schema. Sections are omitted entirely when their
// backing instruction list is empty; commas appear only between present
// sections.
func JSON(instrs []ir.Instruction) string {
	var enemies, towers, waves, placements []int
	var mapIdx = -1

	for idx, in := range instrs {
		switch in.Op {
		case ir.DEFINE_MAP:
			if mapIdx < 0 {
				mapIdx = idx
			}
		case ir.DEFINE_ENEMY:
			enemies = append(enemies, idx)
		case ir.DEFINE_TOWER:
			towers = append(towers, idx)
		case ir.DEFINE_WAVE:
			waves = append(waves, idx)
		case ir.PLACE_TOWER:
			placements = append(placements, idx)
		}
	}

	var b []byte

	b = hfmt.Appendf(b, "{\n  \"gameConfig\": {\n")

	wrote := false

	if mapIdx >= 0 {
		b = appendMapJSON(b, instrs[mapIdx])
		wrote = true
	}

	if len(enemies) > 0 {
		if wrote {
			b = append(b, ",\n"...)
		}
		b = hfmt.Appendf(b, "    \"enemies\": [\n")

		for i, idx := range enemies {
			b = appendEnemyJSON(b, instrs[idx])
			if i+1 < len(enemies) {
				b = append(b, ',')
			}
			b = append(b, '\n')
		}

		b = hfmt.Appendf(b, "    ]")
		wrote = true
	}

	if len(towers) > 0 {
		if wrote {
			b = append(b, ",\n"...)
		}
		b = hfmt.Appendf(b, "    \"towers\": [\n")

		for i, idx := range towers {
			b = appendTowerJSON(b, instrs[idx])
			if i+1 < len(towers) {
				b = append(b, ',')
			}
			b = append(b, '\n')
		}

		b = hfmt.Appendf(b, "    ]")
		wrote = true
	}

	if len(waves) > 0 {
		if wrote {
			b = append(b, ",\n"...)
		}
		b = hfmt.Appendf(b, "    \"waves\": [\n")

		for i, idx := range waves {
			if i > 0 {
				b = append(b, ",\n"...)
			}
			b = appendWaveJSON(b, instrs, idx)
		}

		b = append(b, '\n')
		b = hfmt.Appendf(b, "    ]")
		wrote = true
	}

	if len(placements) > 0 {
		if wrote {
			b = append(b, ",\n"...)
		}
		b = hfmt.Appendf(b, "    \"initialPlacements\": [\n")

		for i, idx := range placements {
			b = appendPlacementJSON(b, instrs[idx])
			if i+1 < len(placements) {
				b = append(b, ',')
			}
			b = append(b, '\n')
		}

		b = hfmt.Appendf(b, "    ]")
	}

	b = hfmt.Appendf(b, "\n  }\n}\n")

	return string(b)
}

func appendMapJSON(b []byte, in ir.Instruction) []byte {
	name := operand(in, 0)

	b = hfmt.Appendf(b, "    \"map\": {\n      \"name\": \"%s\",\n", escapeJSON(name))

	if v, ok := in.Get("width"); ok {
		b = hfmt.Appendf(b, "      \"width\": %d,\n", v.Int)
	}
	if v, ok := in.Get("height"); ok {
		b = hfmt.Appendf(b, "      \"height\": %d,\n", v.Int)
	}

	if v, ok := in.Get("path"); ok {
		b = hfmt.Appendf(b, "      \"path\": [\n")
		b = appendPath(b, v.Str)
		b = hfmt.Appendf(b, "\n      ]\n")
	}

	b = append(b, "    }"...)

	return b
}

func appendPath(b []byte, path string) []byte {
	if path == "" {
		return b
	}

	coords := splitPath(path)

	for i, c := range coords {
		if i > 0 {
			b = append(b, ",\n"...)
		}

		b = hfmt.Appendf(b, "        {\"x\": %d, \"y\": %d}", c[0], c[1])
	}

	return b
}

// splitPath parses the "x,y;x,y;..." path metadata string produced by
// ir.Generate back into coordinate pairs.
func splitPath(path string) [][2]int {
	var out [][2]int

	for _, pair := range strings.Split(path, ";") {
		if pair == "" {
			continue
		}

		xy := strings.SplitN(pair, ",", 2)
		if len(xy) != 2 {
			continue
		}

		x, _ := strconv.Atoi(xy[0])
		y, _ := strconv.Atoi(xy[1])

		out = append(out, [2]int{x, y})
	}

	return out
}

func appendEnemyJSON(b []byte, in ir.Instruction) []byte {
	b = hfmt.Appendf(b, "      {\n        \"name\": \"%s\",\n", escapeJSON(operand(in, 0)))

	if v, ok := in.Get("hp"); ok {
		b = hfmt.Appendf(b, "        \"hp\": %d,\n", v.Int)
	}
	if v, ok := in.Get("speed"); ok {
		b = hfmt.Appendf(b, "        \"speed\": %s,\n", formatReal(v.Real))
	}
	if v, ok := in.Get("reward"); ok {
		b = hfmt.Appendf(b, "        \"reward\": %d\n", v.Int)
	}

	b = append(b, "      }"...)

	return b
}

func appendTowerJSON(b []byte, in ir.Instruction) []byte {
	b = hfmt.Appendf(b, "      {\n        \"name\": \"%s\",\n", escapeJSON(operand(in, 0)))

	if v, ok := in.Get("range"); ok {
		b = hfmt.Appendf(b, "        \"range\": %d,\n", v.Int)
	}
	if v, ok := in.Get("damage"); ok {
		b = hfmt.Appendf(b, "        \"damage\": %d,\n", v.Int)
	}
	if v, ok := in.Get("fire_rate"); ok {
		b = hfmt.Appendf(b, "        \"fireRate\": %s,\n", formatReal(v.Real))
	}

	if v, ok := in.Get("cost"); ok {
		b = hfmt.Appendf(b, "        \"cost\": %d", v.Int)
	}

	if v, ok := in.Get("dps"); ok {
		b = hfmt.Appendf(b, ",\n        \"dps\": %s", formatReal(v.Real))
	}

	b = append(b, "\n      }"...)

	return b
}

func appendWaveJSON(b []byte, instrs []ir.Instruction, idx int) []byte {
	wave := instrs[idx]
	waveName := operand(wave, 0)

	b = hfmt.Appendf(b, "      {\n        \"name\": \"%s\",\n        \"spawns\": [\n", escapeJSON(waveName))

	first := true

	for i := idx + 1; i < len(instrs) && instrs[i].Op == ir.SPAWN_ENEMY && operand(instrs[i], 0) == waveName; i++ {
		s := instrs[i]

		if !first {
			b = append(b, ",\n"...)
		}
		first = false

		b = hfmt.Appendf(b, "          {\n            \"enemyType\": \"%s\",\n", escapeJSON(operand(s, 1)))

		if v, ok := s.Get("count"); ok {
			b = hfmt.Appendf(b, "            \"count\": %d,\n", v.Int)
		}
		if v, ok := s.Get("start"); ok {
			b = hfmt.Appendf(b, "            \"start\": %d,\n", v.Int)
		}
		if v, ok := s.Get("interval"); ok {
			b = hfmt.Appendf(b, "            \"interval\": %d\n", v.Int)
		}

		b = append(b, "          }"...)
	}

	b = hfmt.Appendf(b, "\n        ]\n      }")

	return b
}

func appendPlacementJSON(b []byte, in ir.Instruction) []byte {
	b = hfmt.Appendf(b, "      {\n        \"towerType\": \"%s\",\n", escapeJSON(operand(in, 0)))

	if v, ok := in.Get("x"); ok {
		b = hfmt.Appendf(b, "        \"x\": %d,\n", v.Int)
	}
	if v, ok := in.Get("y"); ok {
		b = hfmt.Appendf(b, "        \"y\": %d\n", v.Int)
	}

	b = append(b, "      }"...)

	return b
}

func operand(in ir.Instruction, i int) string {
	if i < len(in.Operands) {
		return in.Operands[i]
	}

	return ""
}

