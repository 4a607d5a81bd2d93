package game

const MaxPartySize = 6

// Party is an ordered list of up to MaxPartySize creatures. Fainted members
// stay in place.
type Party struct {
	Members []*Creature
}

func NewParty(members ...*Creature) *Party {
	p := &Party{}
	for _, m := range members {
		if len(p.Members) == MaxPartySize {
			break
		}
		p.Members = append(p.Members, m)
	}
	return p
}

func (p *Party) Len() int { return len(p.Members) }

func (p *Party) Get(i int) (*Creature, error) {
	if i < 0 || i >= len(p.Members) {
		return nil, ErrPartyIndex
	}
	return p.Members[i], nil
}

// FirstHealthy returns the index of the first member with HP left, or -1.
func (p *Party) FirstHealthy() int {
	return p.NextHealthy(-1)
}

// NextHealthy returns the first healthy member index other than skip, or -1.
func (p *Party) NextHealthy(skip int) int {
	for i, m := range p.Members {
		if i != skip && !m.Fainted() {
			return i
		}
	}
	return -1
}

func (p *Party) HasHealthy() bool { return p.FirstHealthy() >= 0 }

func (p *Party) Add(c *Creature) error {
	if len(p.Members) >= MaxPartySize {
		return ErrPartyFull
	}
	p.Members = append(p.Members, c)
	return nil
}

func (p *Party) Swap(i, j int) error {
	if i < 0 || j < 0 || i >= len(p.Members) || j >= len(p.Members) {
		return ErrPartyIndex
	}
	p.Members[i], p.Members[j] = p.Members[j], p.Members[i]
	return nil
}

// Release removes the member at i and returns it.
func (p *Party) Release(i int) (*Creature, error) {
	if i < 0 || i >= len(p.Members) {
		return nil, ErrPartyIndex
	}
	c := p.Members[i]
	p.Members = append(p.Members[:i], p.Members[i+1:]...)
	return c, nil
}

// ResetBattleState is applied to every member when a battle ends.
func (p *Party) ResetBattleState() {
	for _, m := range p.Members {
		m.ResetBattleState()
	}
}
