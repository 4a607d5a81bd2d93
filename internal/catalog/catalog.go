// Package catalog loads the read-only move and species definitions the
// battle engine works from.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ericogr/pocket-arena/internal/game"
	"github.com/ericogr/pocket-arena/internal/keys"
)

var (
	ErrUnknownSpecies = errors.New("unknown species")
	ErrUnknownMove    = errors.New("unknown move")
)

const maxPriority = 5

type rawBoost struct {
	Stat  string `yaml:"stat"`
	Boost int    `yaml:"boost"`
}

type rawEffects struct {
	Boosts   []rawBoost `yaml:"boosts"`
	Status   string     `yaml:"status"`
	Volatile string     `yaml:"volatile"`
}

type rawSecondary struct {
	Chance   int        `yaml:"chance"`
	Target   string     `yaml:"target"`
	Boosts   []rawBoost `yaml:"boosts"`
	Status   string     `yaml:"status"`
	Volatile string     `yaml:"volatile"`
}

type rawMove struct {
	Key         string         `yaml:"key"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Type        string         `yaml:"type"`
	Category    string         `yaml:"category"`
	Power       int            `yaml:"power"`
	Accuracy    int            `yaml:"accuracy"`
	AlwaysHits  bool           `yaml:"always_hits"`
	PP          int            `yaml:"pp"`
	Priority    int            `yaml:"priority"`
	Target      string         `yaml:"target"`
	Effects     rawEffects     `yaml:"effects"`
	Secondaries []rawSecondary `yaml:"secondaries"`
}

type rawLearn struct {
	Move  string `yaml:"move"`
	Level int    `yaml:"level"`
}

type rawSpecies struct {
	Key         string         `yaml:"key"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Types       []string       `yaml:"types"`
	BaseStats   game.BaseStats `yaml:"base_stats"`
	ExpYield    int            `yaml:"exp_yield"`
	GrowthRate  string         `yaml:"growth_rate"`
	CatchRate   int            `yaml:"catch_rate"`
	Learnset    []rawLearn     `yaml:"learnset"`
}

type rawCatalog struct {
	Moves   []rawMove    `yaml:"moves"`
	Species []rawSpecies `yaml:"species"`
}

// Catalog is immutable after load and safe for concurrent reads.
type Catalog struct {
	moves   map[string]*game.MoveSpec
	species map[string]*game.Species
}

// Load reads and validates the catalog file at path.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog. Every move and species is validated and
// learnsets are resolved against the moves of the same document.
func Parse(data []byte) (*Catalog, error) {
	var rc rawCatalog
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(rc.Moves) == 0 {
		return nil, errors.New("moves is empty")
	}
	if len(rc.Species) == 0 {
		return nil, errors.New("species is empty")
	}

	c := &Catalog{
		moves:   make(map[string]*game.MoveSpec, len(rc.Moves)),
		species: make(map[string]*game.Species, len(rc.Species)),
	}
	for i, rm := range rc.Moves {
		m, err := buildMove(rm)
		if err != nil {
			return nil, fmt.Errorf("move #%d (%s): %w", i+1, rm.Key, err)
		}
		if _, dup := c.moves[m.Key]; dup {
			return nil, fmt.Errorf("duplicate move key '%s'", m.Key)
		}
		c.moves[m.Key] = m
	}
	for i, rs := range rc.Species {
		sp, err := c.buildSpecies(rs)
		if err != nil {
			return nil, fmt.Errorf("species #%d (%s): %w", i+1, rs.Key, err)
		}
		if _, dup := c.species[sp.Key]; dup {
			return nil, fmt.Errorf("duplicate species key '%s'", sp.Key)
		}
		c.species[sp.Key] = sp
	}
	return c, nil
}

func keyAndName(key, name string) (string, string, error) {
	k := keys.Normalize(key)
	if k == "" {
		k = keys.Normalize(name)
	}
	if k == "" {
		return "", "", errors.New("missing 'key'")
	}
	n := strings.TrimSpace(name)
	if n == "" {
		n = keys.DisplayName(k)
	}
	return k, n, nil
}

func buildMove(rm rawMove) (*game.MoveSpec, error) {
	key, name, err := keyAndName(rm.Key, rm.Name)
	if err != nil {
		return nil, err
	}
	m := &game.MoveSpec{
		Key:         key,
		Name:        name,
		Description: strings.TrimSpace(rm.Description),
		Power:       rm.Power,
		Accuracy:    rm.Accuracy,
		AlwaysHits:  rm.AlwaysHits,
		PP:          rm.PP,
		Priority:    rm.Priority,
	}
	if m.Type, err = game.ParseType(rm.Type); err != nil {
		return nil, err
	}
	if m.Type == game.TypeNone {
		return nil, errors.New("missing 'type'")
	}
	if m.Category, err = game.ParseMoveCategory(rm.Category); err != nil {
		return nil, err
	}
	if m.Target, err = game.ParseMoveTarget(rm.Target); err != nil {
		return nil, err
	}
	switch {
	case m.Category != game.CategoryStatus && m.Power <= 0:
		return nil, fmt.Errorf("damaging move needs a positive power, got %d", m.Power)
	case m.Category == game.CategoryStatus && m.Power != 0:
		return nil, errors.New("status move can't have power")
	case !m.AlwaysHits && (m.Accuracy < 1 || m.Accuracy > 100):
		return nil, fmt.Errorf("accuracy must be within 1..100, got %d", m.Accuracy)
	case m.PP <= 0:
		return nil, fmt.Errorf("pp must be positive, got %d", m.PP)
	case m.Priority < -maxPriority || m.Priority > maxPriority:
		return nil, fmt.Errorf("priority must be within -%d..%d, got %d", maxPriority, maxPriority, m.Priority)
	}
	if m.Effects, err = buildEffects(rm.Effects.Boosts, rm.Effects.Status, rm.Effects.Volatile); err != nil {
		return nil, fmt.Errorf("effects: %w", err)
	}
	for i, rs := range rm.Secondaries {
		sec := game.SecondaryEffect{Chance: rs.Chance}
		if sec.MoveEffects, err = buildEffects(rs.Boosts, rs.Status, rs.Volatile); err != nil {
			return nil, fmt.Errorf("secondary #%d: %w", i+1, err)
		}
		if sec.Target, err = game.ParseMoveTarget(rs.Target); err != nil {
			return nil, fmt.Errorf("secondary #%d: %w", i+1, err)
		}
		if sec.Chance < 1 || sec.Chance > 100 {
			return nil, fmt.Errorf("secondary #%d: chance must be within 1..100, got %d", i+1, sec.Chance)
		}
		if sec.MoveEffects.Empty() {
			return nil, fmt.Errorf("secondary #%d has no effect", i+1)
		}
		m.Secondaries = append(m.Secondaries, sec)
	}
	return m, nil
}

func buildEffects(boosts []rawBoost, status, volatile string) (game.MoveEffects, error) {
	var e game.MoveEffects
	for _, rb := range boosts {
		st, err := game.ParseStat(rb.Stat)
		if err != nil {
			return e, err
		}
		if rb.Boost == 0 || rb.Boost < game.MinStage || rb.Boost > game.MaxStage {
			return e, fmt.Errorf("boost for %s must be non-zero and within %d..%d", st, game.MinStage, game.MaxStage)
		}
		e.Boosts = append(e.Boosts, game.StatBoost{Stat: st, Boost: rb.Boost})
	}
	var err error
	if e.Status, err = game.ParseCondition(status); err != nil {
		return e, err
	}
	if e.Status.Volatile() {
		return e, fmt.Errorf("'%s' is volatile, use 'volatile'", status)
	}
	if e.Volatile, err = game.ParseCondition(volatile); err != nil {
		return e, err
	}
	if e.Volatile != game.ConditionNone && !e.Volatile.Volatile() {
		return e, fmt.Errorf("'%s' is a persistent status, use 'status'", volatile)
	}
	return e, nil
}

func (c *Catalog) buildSpecies(rs rawSpecies) (*game.Species, error) {
	key, name, err := keyAndName(rs.Key, rs.Name)
	if err != nil {
		return nil, err
	}
	sp := &game.Species{
		Key:         key,
		Name:        name,
		Description: strings.TrimSpace(rs.Description),
		BaseStats:   rs.BaseStats,
		ExpYield:    rs.ExpYield,
		CatchRate:   rs.CatchRate,
	}
	if len(rs.Types) == 0 || len(rs.Types) > 2 {
		return nil, fmt.Errorf("needs one or two types, got %d", len(rs.Types))
	}
	if sp.Type1, err = game.ParseType(rs.Types[0]); err != nil {
		return nil, err
	}
	if sp.Type1 == game.TypeNone {
		return nil, errors.New("first type can't be none")
	}
	if len(rs.Types) == 2 {
		if sp.Type2, err = game.ParseType(rs.Types[1]); err != nil {
			return nil, err
		}
		if sp.Type2 == sp.Type1 {
			sp.Type2 = game.TypeNone
		}
	}
	if sp.GrowthRate, err = game.ParseGrowthRate(rs.GrowthRate); err != nil {
		return nil, err
	}
	b := sp.BaseStats
	if b.HP <= 0 || b.Attack <= 0 || b.Defense <= 0 || b.SpAttack <= 0 || b.SpDefense <= 0 || b.Speed <= 0 {
		return nil, errors.New("every base stat must be positive")
	}
	if sp.ExpYield < 0 {
		return nil, fmt.Errorf("exp_yield can't be negative, got %d", sp.ExpYield)
	}
	if sp.CatchRate == 0 {
		sp.CatchRate = game.DefaultCatchRate
	}
	if sp.CatchRate < 1 || sp.CatchRate > 255 {
		return nil, fmt.Errorf("catch_rate must be within 1..255, got %d", sp.CatchRate)
	}

	hasStarter := false
	seen := map[string]struct{}{}
	for _, rl := range rs.Learnset {
		mk := keys.Normalize(rl.Move)
		mv, ok := c.moves[mk]
		if !ok {
			return nil, fmt.Errorf("learnset: %w '%s'", ErrUnknownMove, rl.Move)
		}
		if rl.Level < 1 || rl.Level > game.MaxLevel {
			return nil, fmt.Errorf("learnset: level for %s must be within 1..%d, got %d", mk, game.MaxLevel, rl.Level)
		}
		if _, dup := seen[mk]; dup {
			return nil, fmt.Errorf("learnset: duplicate move '%s'", mk)
		}
		seen[mk] = struct{}{}
		if rl.Level == 1 {
			hasStarter = true
		}
		sp.LearnableMoves = append(sp.LearnableMoves, game.LearnableMove{Move: mv, Key: mk, Level: rl.Level})
	}
	if !hasStarter {
		return nil, errors.New("learnset needs at least one move at level 1")
	}
	sort.SliceStable(sp.LearnableMoves, func(i, j int) bool {
		return sp.LearnableMoves[i].Level < sp.LearnableMoves[j].Level
	})
	return sp, nil
}

// Move returns the move with the given key. Keys are normalized, so a
// display name works too.
func (c *Catalog) Move(key string) (*game.MoveSpec, error) {
	if m, ok := c.moves[keys.Normalize(key)]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w '%s'", ErrUnknownMove, key)
}

func (c *Catalog) Species(key string) (*game.Species, error) {
	if sp, ok := c.species[keys.Normalize(key)]; ok {
		return sp, nil
	}
	return nil, fmt.Errorf("%w '%s'", ErrUnknownSpecies, key)
}

// Moves lists every move ordered by key.
func (c *Catalog) Moves() []*game.MoveSpec {
	out := make([]*game.MoveSpec, 0, len(c.moves))
	for _, m := range c.moves {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// AllSpecies lists every species ordered by key.
func (c *Catalog) AllSpecies() []*game.Species {
	out := make([]*game.Species, 0, len(c.species))
	for _, sp := range c.species {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
