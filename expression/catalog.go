package expression

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/buddy/vmath"
)

// Expression names
const (
	Neutral   = "neutral"
	Happy     = "happy"
	Curious   = "curious"
	Sleepy    = "sleepy"
	Sleeping  = "sleeping"
	Excited   = "excited"
	Thinking  = "thinking"
	Wink      = "wink"
	Surprised = "surprised"
	LookLeft  = "lookLeft"
	LookRight = "lookRight"
)

// Unbounded is the duration of expressions that persist until overridden
const Unbounded = vmath.Unbounded

// Expression is a named pose template with nominal dwell and pick weight
type Expression struct {
	Pose     Pose
	Duration time.Duration
	Weight   int // 0 = never picked at random
}

// Name returns the template's name
func (e Expression) Name() string { return e.Pose.Name }

// Catalog is an ordered, read-only registry of expressions
// Order is significant: weighted sampling walks entries in insertion order
type Catalog struct {
	entries  []Expression
	index    map[string]int
	fallback string
}

// NewCatalog builds a catalog; later duplicates replace earlier entries in place
func NewCatalog(fallback string, entries ...Expression) *Catalog {
	c := &Catalog{
		entries:  make([]Expression, 0, len(entries)),
		index:    make(map[string]int, len(entries)),
		fallback: fallback,
	}
	for _, e := range entries {
		if i, ok := c.index[e.Name()]; ok {
			c.entries[i] = e
			continue
		}
		c.index[e.Name()] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// Lookup returns the expression registered under name
func (c *Catalog) Lookup(name string) (Expression, bool) {
	i, ok := c.index[name]
	if !ok {
		return Expression{}, false
	}
	return c.entries[i], true
}

// MustLookup is Lookup for names compiled into the program
func (c *Catalog) MustLookup(name string) Expression {
	e, ok := c.Lookup(name)
	if !ok {
		panic("expression: missing catalog entry " + name)
	}
	return e
}

// Names returns entry names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name()
	}
	return names
}

// All returns a copy of the entries in catalog order
func (c *Catalog) All() []Expression {
	out := make([]Expression, len(c.entries))
	copy(out, c.entries)
	return out
}

// Random draws a weighted expression other than exclude
// Zero-weight entries are never returned; the fallback covers an empty pool
func (c *Catalog) Random(rng *rand.Rand, exclude string) Expression {
	total := 0
	for _, e := range c.entries {
		if e.Weight > 0 && e.Name() != exclude {
			total += e.Weight
		}
	}

	if total > 0 {
		r := rng.Float64() * float64(total)
		for _, e := range c.entries {
			if e.Weight <= 0 || e.Name() == exclude {
				continue
			}
			r -= float64(e.Weight)
			if r <= 0 {
				return e
			}
		}
	}

	return c.MustLookup(c.fallback)
}
