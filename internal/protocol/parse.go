package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/peterkuimelis/locm/internal/game"
)

// ErrEmpty is returned by Parse for a line with no commands.
var ErrEmpty = errors.New("protocol: no commands")

type commandLine struct {
	Commands []*command `parser:"(@@ (';' @@)* ';'?)?"`
}

type command struct {
	Pos  lexer.Position
	Verb string `parser:"@Ident"`
	Args []int  `parser:"@Int*"`
}

var commandParser = participle.MustBuild[commandLine](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "whitespace", Pattern: `\s+`},
		{Name: "Ident", Pattern: `[a-zA-Z]+`},
		{Name: "Int", Pattern: `-?\d+`},
		{Name: "Punct", Pattern: `;`},
	})),
	participle.UseLookahead(2),
)

// verbs maps each command to its operand count range.
var verbs = map[string]struct {
	typ      game.ActionType
	min, max int
}{
	"PASS":   {game.ActionPass, 0, 0},
	"PICK":   {game.ActionPick, 1, 1},
	"SUMMON": {game.ActionSummon, 2, 2},
	"ATTACK": {game.ActionAttack, 1, 2},
	"USE":    {game.ActionUse, 1, 2},
}

// Parse reads a line of ';'-separated commands such as
// "SUMMON 12 0; ATTACK 3 -1; PASS". Verbs are case-insensitive and a
// missing ATTACK or USE target means -1.
func Parse(line string) ([]game.Action, error) {
	parsed, err := commandParser.ParseString("", line)
	if err != nil {
		return nil, fmt.Errorf("protocol: %w", err)
	}
	if len(parsed.Commands) == 0 {
		return nil, ErrEmpty
	}
	actions := make([]game.Action, 0, len(parsed.Commands))
	for _, c := range parsed.Commands {
		a, err := c.action()
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// ParseAction reads exactly one command.
func ParseAction(s string) (game.Action, error) {
	actions, err := Parse(s)
	if err != nil {
		return game.Action{}, err
	}
	if len(actions) != 1 {
		return game.Action{}, fmt.Errorf("protocol: expected one command, got %d", len(actions))
	}
	return actions[0], nil
}

func (c *command) action() (game.Action, error) {
	verb := strings.ToUpper(c.Verb)
	v, ok := verbs[verb]
	if !ok {
		return game.Action{}, fmt.Errorf("protocol: %s: unknown command %q", c.Pos, c.Verb)
	}
	if len(c.Args) < v.min || len(c.Args) > v.max {
		return game.Action{}, fmt.Errorf("protocol: %s: %s takes %d to %d operands, got %d", c.Pos, verb, v.min, v.max, len(c.Args))
	}
	switch v.typ {
	case game.ActionPass:
		return game.Pass(), nil
	case game.ActionPick:
		return game.Pick(c.Args[0]), nil
	case game.ActionSummon:
		return game.Summon(c.Args[0], game.Lane(c.Args[1])), nil
	}
	target := game.NoTarget
	if len(c.Args) == 2 {
		target = c.Args[1]
	}
	if v.typ == game.ActionAttack {
		return game.Attack(c.Args[0], target), nil
	}
	return game.Use(c.Args[0], target), nil
}

// Format joins actions into a single command line.
func Format(actions []game.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, ";")
}
