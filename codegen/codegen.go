// Package codegen turns a final IR instruction sequence into either the
// JSON game configuration artifact or a readable instruction dump. It
// performs no validation of its own: malformed IR produces malformed
// output.
package codegen

import (
	"strconv"
	"strings"

	"github.com/nikandfor/hacked/hfmt"

	"github.com/tdlang/compiler/ir"
)

// Readable renders instructions one per line in emission order, using the
// canonical textual forms from the language specification, prefixed by a
// fixed header and blank line. Spawns are indented two spaces under their
// wave.
func Readable(instrs []ir.Instruction) string {
	var b []byte

	b = hfmt.Appendf(b, "=== TDLang Compiled Output ===\n\n")

	for _, in := range instrs {
		b = appendReadableLine(b, in)
		b = append(b, '\n')
	}

	return string(b)
}

func appendReadableLine(b []byte, in ir.Instruction) []byte {
	name := ""
	if len(in.Operands) > 0 {
		name = in.Operands[0]
	}

	switch in.Op {
	case ir.DEFINE_MAP:
		b = hfmt.Appendf(b, "DEFINE_MAP %s", name)
		if v, ok := in.Get("width"); ok {
			b = hfmt.Appendf(b, " WIDTH=%d", v.Int)
		}
		if v, ok := in.Get("height"); ok {
			b = hfmt.Appendf(b, " HEIGHT=%d", v.Int)
		}
		if v, ok := in.Get("path"); ok {
			b = hfmt.Appendf(b, " PATH=[%s]", v.Str)
		}
	case ir.DEFINE_ENEMY:
		b = hfmt.Appendf(b, "DEFINE_ENEMY %s", name)
		if v, ok := in.Get("hp"); ok {
			b = hfmt.Appendf(b, " HP=%d", v.Int)
		}
		if v, ok := in.Get("speed"); ok {
			b = hfmt.Appendf(b, " SPEED=%v", v.Real)
		}
		if v, ok := in.Get("reward"); ok {
			b = hfmt.Appendf(b, " REWARD=%d", v.Int)
		}
	case ir.DEFINE_TOWER:
		b = hfmt.Appendf(b, "DEFINE_TOWER %s", name)
		if v, ok := in.Get("range"); ok {
			b = hfmt.Appendf(b, " RANGE=%d", v.Int)
		}
		if v, ok := in.Get("damage"); ok {
			b = hfmt.Appendf(b, " DAMAGE=%d", v.Int)
		}
		if v, ok := in.Get("fire_rate"); ok {
			b = hfmt.Appendf(b, " FIRERATE=%v", v.Real)
		}
		if v, ok := in.Get("cost"); ok {
			b = hfmt.Appendf(b, " COST=%d", v.Int)
		}
	case ir.DEFINE_WAVE:
		b = hfmt.Appendf(b, "DEFINE_WAVE %s", name)
	case ir.SPAWN_ENEMY:
		wave := name
		enemy := ""
		if len(in.Operands) > 1 {
			enemy = in.Operands[1]
		}

		b = hfmt.Appendf(b, "  SPAWN_ENEMY %s IN_WAVE=%s", enemy, wave)
		if v, ok := in.Get("count"); ok {
			b = hfmt.Appendf(b, " COUNT=%d", v.Int)
		}
		if v, ok := in.Get("start"); ok {
			b = hfmt.Appendf(b, " START=%d", v.Int)
		}
		if v, ok := in.Get("interval"); ok {
			b = hfmt.Appendf(b, " INTERVAL=%d", v.Int)
		}
	case ir.PLACE_TOWER:
		b = hfmt.Appendf(b, "PLACE_TOWER %s", name)
		if v, ok := in.Get("x"); ok {
			b = hfmt.Appendf(b, " X=%d", v.Int)
		}
		if v, ok := in.Get("y"); ok {
			b = hfmt.Appendf(b, " Y=%d", v.Int)
		}
	case ir.NOP:
		b = hfmt.Appendf(b, "NOP")
	default:
		b = hfmt.Appendf(b, "UNKNOWN_OPCODE")
	}

	return b
}

// escapeJSON escapes the short fixed list of control characters the
// language specification names: quote, backslash, newline, CR, tab. Other
// control bytes pass through unescaped, a known limitation inherited
// unchanged from the spec (see language spec §9).
func escapeJSON(s string) string {
	var b strings.Builder

	for _, c := range []byte(s) {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func formatReal(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
