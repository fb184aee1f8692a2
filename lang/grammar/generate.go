package grammar

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"golang.org/x/exp/ebnf"
)

const defaultMaxDepth = 12

// Generator derives random sentences from a grammar. Every identifier it
// emits is fresh, so generated programs never redeclare a name.
type Generator struct {
	grammar  ebnf.Grammar
	rand     *rand.Rand
	cost     map[string]int
	maxDepth int
	fresh    int
	words    []string
}

type GeneratorOption func(*Generator)

// WithMaxDepth bounds the nesting of productions. Past the bound the
// generator only takes the cheapest way out.
func WithMaxDepth(depth int) GeneratorOption {
	return func(g *Generator) {
		g.maxDepth = depth
	}
}

func NewGenerator(g ebnf.Grammar, seed uint64, opts ...GeneratorOption) *Generator {
	gen := &Generator{
		grammar:  g,
		rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(gen)
	}
	gen.cost = minimalCosts(g)
	return gen
}

// Generate returns one sentence derived from the production named start,
// formatted one statement per line.
func (g *Generator) Generate(start string) (string, error) {
	if _, ok := g.grammar[start]; !ok {
		return "", fmt.Errorf("unknown production %q", start)
	}
	g.words = g.words[:0]
	if err := g.expandName(start, 0); err != nil {
		return "", err
	}
	return layout(g.words), nil
}

func (g *Generator) expandName(name string, depth int) error {
	prod, ok := g.grammar[name]
	if !ok {
		return fmt.Errorf("undefined production %q", name)
	}
	if IsLexical(name) {
		g.words = append(g.words, g.lexeme(name, prod))
		return nil
	}
	if prod.Expr == nil {
		return nil
	}
	return g.expand(prod.Expr, depth+1)
}

func (g *Generator) expand(expr ebnf.Expression, depth int) error {
	bounded := depth > g.maxDepth
	switch x := expr.(type) {
	case ebnf.Alternative:
		i := g.rand.IntN(len(x))
		if bounded {
			i = g.cheapest(x)
		}
		return g.expand(x[i], depth)
	case ebnf.Sequence:
		for _, e := range x {
			if err := g.expand(e, depth); err != nil {
				return err
			}
		}
	case *ebnf.Group:
		return g.expand(x.Body, depth)
	case *ebnf.Option:
		if !bounded && g.rand.IntN(2) == 0 {
			return g.expand(x.Body, depth)
		}
	case *ebnf.Repetition:
		if bounded {
			return nil
		}
		for n := g.rand.IntN(3); n > 0; n-- {
			if err := g.expand(x.Body, depth); err != nil {
				return err
			}
		}
	case *ebnf.Name:
		return g.expandName(x.String, depth)
	case *ebnf.Token:
		g.words = append(g.words, x.String)
	default:
		return fmt.Errorf("cannot generate from %T", expr)
	}
	return nil
}

func (g *Generator) cheapest(alts ebnf.Alternative) int {
	best, bestCost := 0, math.MaxInt
	for i, alt := range alts {
		if c := exprCost(alt, g.cost); c < bestCost {
			best, bestCost = i, c
		}
	}
	return best
}

// lexeme builds one token from a lexical production. Identifiers are
// numbered instead of derived so they never collide with keywords or each
// other.
func (g *Generator) lexeme(name string, prod *ebnf.Production) string {
	if name == "ident" {
		g.fresh++
		return fmt.Sprintf("v%d", g.fresh)
	}
	var sb strings.Builder
	g.spell(prod.Expr, &sb)
	return sb.String()
}

func (g *Generator) spell(expr ebnf.Expression, sb *strings.Builder) {
	switch x := expr.(type) {
	case ebnf.Alternative:
		g.spell(x[g.rand.IntN(len(x))], sb)
	case ebnf.Sequence:
		for _, e := range x {
			g.spell(e, sb)
		}
	case *ebnf.Group:
		g.spell(x.Body, sb)
	case *ebnf.Option:
		if g.rand.IntN(2) == 0 {
			g.spell(x.Body, sb)
		}
	case *ebnf.Repetition:
		for n := g.rand.IntN(3); n > 0; n-- {
			g.spell(x.Body, sb)
		}
	case *ebnf.Name:
		if prod, ok := g.grammar[x.String]; ok && prod.Expr != nil {
			g.spell(prod.Expr, sb)
		}
	case *ebnf.Token:
		sb.WriteString(x.String)
	case *ebnf.Range:
		lo := []rune(x.Begin.String)[0]
		hi := []rune(x.End.String)[0]
		sb.WriteRune(lo + rune(g.rand.IntN(int(hi-lo)+1)))
	}
}

// minimalCosts computes, for every production, the fewest tokens any
// derivation of it can produce.
func minimalCosts(g ebnf.Grammar) map[string]int {
	cost := make(map[string]int, len(g))
	for name := range g {
		cost[name] = math.MaxInt
	}
	for changed := true; changed; {
		changed = false
		for name, prod := range g {
			c := 1
			if !IsLexical(name) {
				c = exprCost(prod.Expr, cost)
			}
			if c < cost[name] {
				cost[name] = c
				changed = true
			}
		}
	}
	return cost
}

func exprCost(expr ebnf.Expression, cost map[string]int) int {
	switch x := expr.(type) {
	case nil:
		return 0
	case ebnf.Alternative:
		best := math.MaxInt
		for _, e := range x {
			best = min(best, exprCost(e, cost))
		}
		return best
	case ebnf.Sequence:
		total := 0
		for _, e := range x {
			c := exprCost(e, cost)
			if c == math.MaxInt {
				return math.MaxInt
			}
			total += c
		}
		return total
	case *ebnf.Group:
		return exprCost(x.Body, cost)
	case *ebnf.Option, *ebnf.Repetition:
		return 0
	case *ebnf.Name:
		c, ok := cost[x.String]
		if !ok {
			return math.MaxInt
		}
		return c
	default:
		return 1
	}
}

func layout(words []string) string {
	var sb strings.Builder
	indent := 0
	lineStart := true
	for _, w := range words {
		if w == "}" {
			indent--
			if !lineStart {
				sb.WriteByte('\n')
				lineStart = true
			}
		}
		if lineStart {
			sb.WriteString(strings.Repeat("    ", max(indent, 0)))
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteString(w)
		lineStart = false
		switch w {
		case "{":
			indent++
			sb.WriteByte('\n')
			lineStart = true
		case ";", "}":
			sb.WriteByte('\n')
			lineStart = true
		}
	}
	return sb.String()
}
