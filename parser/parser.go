// Package parser implements the recursive-descent TDLang grammar described
// in the language specification, turning a token.Token stream from
// lexer.Lexer into an *ast.Program.
package parser

import (
	"fmt"

	"tlog.app/go/errors"

	"github.com/tdlang/compiler/ast"
	"github.com/tdlang/compiler/lexer"
	"github.com/tdlang/compiler/token"
)

// SyntaxError is returned for any grammar mismatch: it names what the
// parser expected and the line of the token it found instead.
type SyntaxError struct {
	Expected string
	Got      token.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s, got %v at line %d", e.Expected, e.Got.Tag, e.Got.Line)
}

// Parser consumes a lexer.Lexer and builds an *ast.Program. It aborts on
// the first grammar mismatch; there is no panic-mode recovery.
type Parser struct {
	lex *lexer.Lexer
}

// New returns a Parser reading tokens from lex.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

// Parse consumes the whole token stream and returns the resulting program,
// or the first syntax error encountered.
func Parse(src []byte) (*ast.Program, error) {
	p := New(lexer.New(src))

	return p.ParseProgram()
}

// ParseProgram parses decl* until END_OF_FILE.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}

	for p.lex.Peek().Tag != token.END_OF_FILE {
		d, err := p.parseDecl()
		if err != nil {
			return nil, errors.Wrap(err, "declaration")
		}

		prog.Decls = append(prog.Decls, d)
	}

	return prog, nil
}

func (p *Parser) parseDecl() (ast.Decl, error) {
	switch p.lex.Peek().Tag {
	case token.MAP:
		return p.parseMap()
	case token.ENEMY:
		return p.parseEnemy()
	case token.TOWER:
		return p.parseTower()
	case token.WAVE:
		return p.parseWave()
	case token.PLACE:
		return p.parsePlace()
	default:
		return nil, &SyntaxError{Expected: "map, enemy, tower, wave, or place", Got: p.lex.Peek()}
	}
}

func (p *Parser) parseMap() (*ast.Map, error) {
	if _, err := p.expect(token.MAP, "\"map\""); err != nil {
		return nil, err
	}

	name, err := p.expect(token.IDENT, "map name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBRACE, "\"{\""); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.SIZE, "\"size\""); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EQUAL, "\"=\""); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "\"(\""); err != nil {
		return nil, err
	}

	width, err := p.expectInt("map width")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA, "\",\""); err != nil {
		return nil, err
	}

	height, err := p.expectInt("map height")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "\")\""); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "\";\""); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.PATH, "\"path\""); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EQUAL, "\"=\""); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACKET, "\"[\""); err != nil {
		return nil, err
	}

	var path []ast.Point

	for p.lex.Peek().Tag != token.RBRACKET {
		pt, err := p.parsePoint()
		if err != nil {
			return nil, errors.Wrap(err, "path point")
		}

		path = append(path, pt)

		if p.lex.Peek().Tag == token.COMMA {
			p.lex.Next()
		}
	}

	if _, err := p.expect(token.RBRACKET, "\"]\""); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "\";\""); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACE, "\"}\""); err != nil {
		return nil, err
	}

	return &ast.Map{Name: name.Lexeme, Width: width, Height: height, Path: path}, nil
}

func (p *Parser) parsePoint() (ast.Point, error) {
	if _, err := p.expect(token.LPAREN, "\"(\""); err != nil {
		return ast.Point{}, err
	}

	x, err := p.expectInt("x coordinate")
	if err != nil {
		return ast.Point{}, err
	}
	if _, err := p.expect(token.COMMA, "\",\""); err != nil {
		return ast.Point{}, err
	}

	y, err := p.expectInt("y coordinate")
	if err != nil {
		return ast.Point{}, err
	}
	if _, err := p.expect(token.RPAREN, "\")\""); err != nil {
		return ast.Point{}, err
	}

	return ast.Point{X: x, Y: y}, nil
}

// parseAttrName consumes one IDENT used as an attribute label. The parser
// never checks the lexeme against a reserved set; only position within the
// block determines which field it fills (see language spec §4.2).
func (p *Parser) parseAttrName() error {
	_, err := p.expect(token.IDENT, "attribute name")
	return err
}

func (p *Parser) parseEnemy() (*ast.Enemy, error) {
	if _, err := p.expect(token.ENEMY, "\"enemy\""); err != nil {
		return nil, err
	}

	name, err := p.expect(token.IDENT, "enemy name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBRACE, "\"{\""); err != nil {
		return nil, err
	}

	hp, err := p.parseNamedInt("hp")
	if err != nil {
		return nil, err
	}

	speed, err := p.parseNamedFloat("speed")
	if err != nil {
		return nil, err
	}

	reward, err := p.parseNamedInt("reward")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RBRACE, "\"}\""); err != nil {
		return nil, err
	}

	return &ast.Enemy{Name: name.Lexeme, HP: hp, Speed: speed, Reward: reward}, nil
}

func (p *Parser) parseTower() (*ast.Tower, error) {
	if _, err := p.expect(token.TOWER, "\"tower\""); err != nil {
		return nil, err
	}

	name, err := p.expect(token.IDENT, "tower name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBRACE, "\"{\""); err != nil {
		return nil, err
	}

	rang, err := p.parseNamedInt("range")
	if err != nil {
		return nil, err
	}

	damage, err := p.parseNamedInt("damage")
	if err != nil {
		return nil, err
	}

	fireRate, err := p.parseNamedFloat("fire_rate")
	if err != nil {
		return nil, err
	}

	cost, err := p.parseNamedInt("cost")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RBRACE, "\"}\""); err != nil {
		return nil, err
	}

	return &ast.Tower{Name: name.Lexeme, Range: rang, Damage: damage, FireRate: fireRate, Cost: cost}, nil
}

// parseNamedInt parses "IDENT = INT ;" where the IDENT's text is ignored
// (what string is used in what) is a convention, and what the caller
// asks for is what determines the field it feeds.
func (p *Parser) parseNamedInt(what string) (int, error) {
	if err := p.parseAttrName(); err != nil {
		return 0, errors.Wrap(err, "%s name", what)
	}
	if _, err := p.expect(token.EQUAL, "\"=\""); err != nil {
		return 0, err
	}

	v, err := p.expectInt(what + " value")
	if err != nil {
		return 0, err
	}

	if _, err := p.expect(token.SEMICOLON, "\";\""); err != nil {
		return 0, err
	}

	return v, nil
}

func (p *Parser) parseNamedFloat(what string) (float64, error) {
	if err := p.parseAttrName(); err != nil {
		return 0, errors.Wrap(err, "%s name", what)
	}
	if _, err := p.expect(token.EQUAL, "\"=\""); err != nil {
		return 0, err
	}

	v, err := p.expectFloat(what + " value")
	if err != nil {
		return 0, err
	}

	if _, err := p.expect(token.SEMICOLON, "\";\""); err != nil {
		return 0, err
	}

	return v, nil
}

func (p *Parser) parseWave() (*ast.Wave, error) {
	if _, err := p.expect(token.WAVE, "\"wave\""); err != nil {
		return nil, err
	}

	name, err := p.expect(token.IDENT, "wave name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBRACE, "\"{\""); err != nil {
		return nil, err
	}

	var spawns []ast.Spawn

	for p.lex.Peek().Tag == token.SPAWN {
		s, err := p.parseSpawn()
		if err != nil {
			return nil, errors.Wrap(err, "spawn")
		}

		spawns = append(spawns, s)
	}

	if _, err := p.expect(token.RBRACE, "\"}\""); err != nil {
		return nil, err
	}

	return &ast.Wave{Name: name.Lexeme, Spawns: spawns}, nil
}

func (p *Parser) parseSpawn() (ast.Spawn, error) {
	if _, err := p.expect(token.SPAWN, "\"spawn\""); err != nil {
		return ast.Spawn{}, err
	}
	if _, err := p.expect(token.LPAREN, "\"(\""); err != nil {
		return ast.Spawn{}, err
	}

	enemy, err := p.expect(token.IDENT, "enemy type")
	if err != nil {
		return ast.Spawn{}, err
	}
	if _, err := p.expect(token.COMMA, "\",\""); err != nil {
		return ast.Spawn{}, err
	}

	if _, err := p.expect(token.COUNT, "\"count\""); err != nil {
		return ast.Spawn{}, err
	}
	if _, err := p.expect(token.EQUAL, "\"=\""); err != nil {
		return ast.Spawn{}, err
	}
	count, err := p.expectInt("count value")
	if err != nil {
		return ast.Spawn{}, err
	}
	if _, err := p.expect(token.COMMA, "\",\""); err != nil {
		return ast.Spawn{}, err
	}

	if _, err := p.expect(token.START, "\"start\""); err != nil {
		return ast.Spawn{}, err
	}
	if _, err := p.expect(token.EQUAL, "\"=\""); err != nil {
		return ast.Spawn{}, err
	}
	start, err := p.expectInt("start value")
	if err != nil {
		return ast.Spawn{}, err
	}
	if _, err := p.expect(token.COMMA, "\",\""); err != nil {
		return ast.Spawn{}, err
	}

	if _, err := p.expect(token.INTERVAL, "\"interval\""); err != nil {
		return ast.Spawn{}, err
	}
	if _, err := p.expect(token.EQUAL, "\"=\""); err != nil {
		return ast.Spawn{}, err
	}
	interval, err := p.expectInt("interval value")
	if err != nil {
		return ast.Spawn{}, err
	}

	if _, err := p.expect(token.RPAREN, "\")\""); err != nil {
		return ast.Spawn{}, err
	}
	if _, err := p.expect(token.SEMICOLON, "\";\""); err != nil {
		return ast.Spawn{}, err
	}

	return ast.Spawn{EnemyType: enemy.Lexeme, Count: count, Start: start, Interval: interval}, nil
}

func (p *Parser) parsePlace() (*ast.Place, error) {
	if _, err := p.expect(token.PLACE, "\"place\""); err != nil {
		return nil, err
	}

	tower, err := p.expect(token.IDENT, "tower type")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.AT, "\"at\""); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "\"(\""); err != nil {
		return nil, err
	}

	x, err := p.expectInt("x coordinate")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COMMA, "\",\""); err != nil {
		return nil, err
	}

	y, err := p.expectInt("y coordinate")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "\")\""); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, "\";\""); err != nil {
		return nil, err
	}

	return &ast.Place{TowerType: tower.Lexeme, X: x, Y: y}, nil
}

func (p *Parser) expect(tag token.Tag, what string) (token.Token, error) {
	t := p.lex.Peek()
	if t.Tag != tag {
		return t, &SyntaxError{Expected: what, Got: t}
	}

	return p.lex.Next(), nil
}

func (p *Parser) expectInt(what string) (int, error) {
	t, err := p.expect(token.INT, what)
	if err != nil {
		return 0, err
	}

	return atoi(t.Lexeme), nil
}

func (p *Parser) expectFloat(what string) (float64, error) {
	t, err := p.expect(token.FLOAT, what)
	if err != nil {
		return 0, err
	}

	return atof(t.Lexeme), nil
}
