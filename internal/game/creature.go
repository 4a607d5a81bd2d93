package game

import (
	"errors"
	"math"
	"sort"
)

var (
	ErrMoveSlotsFull = errors.New("creature already knows the maximum number of moves")
	ErrMoveIndex     = errors.New("move index out of range")
	ErrPartyFull     = errors.New("party is full")
	ErrPartyIndex    = errors.New("party index out of range")
)

// Creature is one combatant instance. It is not safe for concurrent use.
type Creature struct {
	Species    *Species
	Nickname   string
	Level      int
	HP         int
	Exp        int
	Moves      []Move
	Status     ConditionID
	StatusTime int
	Volatiles  map[ConditionID]int
	Stages     StatStages
}

// NewCreature builds a creature at full HP knowing the last MaxNumMoves
// learnable moves at or below its level, with the exp total of that level.
func NewCreature(sp *Species, level int) *Creature {
	level = max(1, min(level, MaxLevel))
	c := &Creature{
		Species:   sp,
		Level:     level,
		Exp:       sp.GrowthRate.ExpForLevel(level),
		Volatiles: map[ConditionID]int{},
	}
	learnable := make([]LearnableMove, 0, len(sp.LearnableMoves))
	for _, lm := range sp.LearnableMoves {
		if lm.Level <= level && lm.Move != nil {
			learnable = append(learnable, lm)
		}
	}
	sort.SliceStable(learnable, func(i, j int) bool { return learnable[i].Level < learnable[j].Level })
	if len(learnable) > MaxNumMoves {
		learnable = learnable[len(learnable)-MaxNumMoves:]
	}
	for _, lm := range learnable {
		c.Moves = append(c.Moves, NewMove(lm.Move))
	}
	c.HP = c.MaxHP()
	return c
}

func (c *Creature) Name() string {
	if c.Nickname != "" {
		return c.Nickname
	}
	return c.Species.Name
}

func (c *Creature) MaxHP() int {
	return c.Species.BaseStats.HP*c.Level/100 + 10 + c.Level
}

// BaseStat is the level-scaled stat without stages.
func (c *Creature) BaseStat(s Stat) int {
	return c.Species.BaseStats.value(s)*c.Level/100 + 5
}

// Stat is the level-scaled stat with its current stage applied.
func (c *Creature) Stat(s Stat) int {
	return int(math.Floor(float64(c.BaseStat(s)) * BoostFactor(c.Stages[s])))
}

func (c *Creature) Attack() int    { return c.Stat(StatAttack) }
func (c *Creature) Defense() int   { return c.Stat(StatDefense) }
func (c *Creature) SpAttack() int  { return c.Stat(StatSpAttack) }
func (c *Creature) SpDefense() int { return c.Stat(StatSpDefense) }
func (c *Creature) Speed() int     { return c.Stat(StatSpeed) }

// SetHP stores hp clamped to [0, MaxHP].
func (c *Creature) SetHP(hp int) {
	c.HP = max(0, min(hp, c.MaxHP()))
}

func (c *Creature) TakeHP(n int) { c.SetHP(c.HP - n) }

func (c *Creature) Fainted() bool { return c.HP <= 0 }

func (c *Creature) HPFraction() float64 {
	m := c.MaxHP()
	if m <= 0 {
		return 0
	}
	return float64(c.HP) / float64(m)
}

// ExpFraction is the progress from the current level's threshold to the
// next one, in [0, 1].
func (c *Creature) ExpFraction() float64 {
	if c.Level >= MaxLevel {
		return 1
	}
	lo := c.Species.GrowthRate.ExpForLevel(c.Level)
	hi := c.Species.GrowthRate.ExpForLevel(c.Level + 1)
	if hi <= lo {
		return 1
	}
	f := float64(c.Exp-lo) / float64(hi-lo)
	return math.Max(0, math.Min(1, f))
}

// ApplyBoosts changes stages and returns one narration line per boost.
func (c *Creature) ApplyBoosts(boosts []StatBoost) []string {
	msgs := make([]string, 0, len(boosts))
	for _, b := range boosts {
		applied := c.Stages.Apply(b.Stat, b.Boost)
		label := c.Name() + "'s " + b.Stat.Label()
		switch {
		case applied > 0:
			msgs = append(msgs, label+" rose!")
		case applied < 0:
			msgs = append(msgs, label+" fell!")
		case b.Boost > 0:
			msgs = append(msgs, label+" won't go any higher!")
		case b.Boost < 0:
			msgs = append(msgs, label+" won't go any lower!")
		}
	}
	return msgs
}

// SetStatus sets the persistent status unless one is already present.
func (c *Creature) SetStatus(id ConditionID, r Rand) bool {
	cond := LookupCondition(id)
	if cond == nil || id == ConditionNone || cond.Volatile || c.Status != ConditionNone {
		return false
	}
	c.Status = id
	c.StatusTime = 0
	if cond.OnStart != nil {
		cond.OnStart(c, r)
	}
	return true
}

func (c *Creature) CureStatus() {
	c.Status = ConditionNone
	c.StatusTime = 0
}

// SetVolatile adds a volatile condition unless it is already active.
func (c *Creature) SetVolatile(id ConditionID, r Rand) bool {
	cond := LookupCondition(id)
	if cond == nil || !cond.Volatile {
		return false
	}
	if c.Volatiles == nil {
		c.Volatiles = map[ConditionID]int{}
	}
	if _, ok := c.Volatiles[id]; ok {
		return false
	}
	c.Volatiles[id] = 0
	if cond.OnStart != nil {
		cond.OnStart(c, r)
	}
	return true
}

func (c *Creature) CureVolatile(id ConditionID) { delete(c.Volatiles, id) }

func (c *Creature) volatileIDs() []ConditionID {
	ids := make([]ConditionID, 0, len(c.Volatiles))
	for id := range c.Volatiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// OnBeforeMove runs the status hook and then every volatile hook. It
// returns false when any of them prevents the move.
func (c *Creature) OnBeforeMove(r Rand, report func(string)) bool {
	canMove := true
	if cond := LookupCondition(c.Status); cond != nil && cond.OnBeforeMove != nil {
		if !cond.OnBeforeMove(c, r, report) {
			canMove = false
		}
	}
	for _, id := range c.volatileIDs() {
		cond := LookupCondition(id)
		if cond == nil || cond.OnBeforeMove == nil {
			continue
		}
		if !cond.OnBeforeMove(c, r, report) {
			canMove = false
		}
	}
	return canMove
}

// OnAfterTurn runs the end-of-turn hooks of status and volatiles.
func (c *Creature) OnAfterTurn(r Rand, report func(string)) {
	if cond := LookupCondition(c.Status); cond != nil && cond.OnAfterTurn != nil {
		cond.OnAfterTurn(c, r, report)
	}
	for _, id := range c.volatileIDs() {
		if cond := LookupCondition(id); cond != nil && cond.OnAfterTurn != nil {
			cond.OnAfterTurn(c, r, report)
		}
	}
}

func (c *Creature) GainExp(n int) {
	if n > 0 {
		c.Exp += n
	}
}

// CheckForLevelUp raises the level by one if exp reached the next
// threshold. MaxHP grows and current HP grows with it.
func (c *Creature) CheckForLevelUp() bool {
	if c.Level >= MaxLevel || c.Exp < c.Species.GrowthRate.ExpForLevel(c.Level+1) {
		return false
	}
	oldMax := c.MaxHP()
	c.Level++
	c.SetHP(c.HP + c.MaxHP() - oldMax)
	return true
}

// LearnableMoveAtCurrentLevel returns the move learned at the current
// level unless the creature already knows it.
func (c *Creature) LearnableMoveAtCurrentLevel() *MoveSpec {
	lm := c.Species.MoveAtLevel(c.Level)
	if lm == nil || lm.Move == nil || c.KnowsMove(lm.Move.Key) {
		return nil
	}
	return lm.Move
}

func (c *Creature) KnowsMove(key string) bool {
	for _, m := range c.Moves {
		if m.Spec.Key == key {
			return true
		}
	}
	return false
}

func (c *Creature) LearnMove(spec *MoveSpec) error {
	if len(c.Moves) >= MaxNumMoves {
		return ErrMoveSlotsFull
	}
	c.Moves = append(c.Moves, NewMove(spec))
	return nil
}

// ReplaceMove swaps the move at i for spec and returns the forgotten one.
func (c *Creature) ReplaceMove(i int, spec *MoveSpec) (*MoveSpec, error) {
	if i < 0 || i >= len(c.Moves) {
		return nil, ErrMoveIndex
	}
	old := c.Moves[i].Spec
	c.Moves[i] = NewMove(spec)
	return old, nil
}

// HasUsableMove reports whether any move still has PP.
func (c *Creature) HasUsableMove() bool {
	for _, m := range c.Moves {
		if m.PP > 0 {
			return true
		}
	}
	return false
}

// RandomMoveIndex picks uniformly among moves with PP left, or -1.
func (c *Creature) RandomMoveIndex(r Rand) int {
	usable := make([]int, 0, len(c.Moves))
	for i, m := range c.Moves {
		if m.PP > 0 {
			usable = append(usable, i)
		}
	}
	if len(usable) == 0 {
		return -1
	}
	return usable[r.IntN(len(usable))]
}

// ResetBattleState clears stages and volatiles. Used on withdrawal and when
// a battle ends.
func (c *Creature) ResetBattleState() {
	c.Stages.Reset()
	clear(c.Volatiles)
}

// Heal restores HP and PP and clears the status.
func (c *Creature) Heal() {
	c.HP = c.MaxHP()
	c.CureStatus()
	c.ResetBattleState()
	for i := range c.Moves {
		c.Moves[i].PP = c.Moves[i].MaxPP()
	}
}
