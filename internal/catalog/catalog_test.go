package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/pocket-arena/internal/game"
)

const sample = `
moves:
  - key: tackle
    type: normal
    category: physical
    power: 40
    accuracy: 100
    pp: 35
  - key: Thunder Shock
    type: electric
    category: special
    power: 40
    accuracy: 100
    pp: 30
    secondaries:
      - { chance: 10, status: paralysis }
  - name: Confuse Ray
    type: ghost
    category: status
    accuracy: 100
    pp: 10
    effects: { volatile: confused }
species:
  - key: voltmouse
    types: [electric, electric]
    base_stats: { hp: 35, attack: 55, defense: 40, sp_attack: 50, sp_defense: 50, speed: 90 }
    exp_yield: 112
    learnset:
      - { move: confuse_ray, level: 9 }
      - { move: thunder-shock, level: 1 }
      - { move: tackle, level: 1 }
`

func TestParseResolvesEntries(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	ts, err := c.Move("thunder shock")
	require.NoError(t, err)
	assert.Equal(t, "thunder_shock", ts.Key)
	assert.Equal(t, "Thunder Shock", ts.Name)
	require.Len(t, ts.Secondaries, 1)
	assert.Equal(t, game.ConditionParalysis, ts.Secondaries[0].Status)

	cr, err := c.Move("confuse_ray")
	require.NoError(t, err)
	assert.Equal(t, game.ConditionConfusion, cr.Effects.Volatile)

	sp, err := c.Species("Voltmouse")
	require.NoError(t, err)
	assert.Equal(t, "Voltmouse", sp.Name)
	assert.Equal(t, game.TypeElectric, sp.Type1)
	assert.Equal(t, game.TypeNone, sp.Type2, "repeated type collapses")
	assert.Equal(t, game.DefaultCatchRate, sp.CatchRate)
	assert.Equal(t, game.GrowthMediumFast, sp.GrowthRate)
	require.Len(t, sp.LearnableMoves, 3)
	assert.Equal(t, 9, sp.LearnableMoves[2].Level, "sorted by level")
	assert.Same(t, ts, sp.LearnableMoves[0].Move)

	assert.Len(t, c.Moves(), 3)
	assert.Equal(t, "confuse_ray", c.Moves()[0].Key)
}

func TestLookupErrors(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)
	_, err = c.Move("hyper beam")
	assert.ErrorIs(t, err, ErrUnknownMove)
	_, err = c.Species("mew")
	assert.ErrorIs(t, err, ErrUnknownSpecies)
}

func TestParseRejectsInvalidEntries(t *testing.T) {
	const move = "moves:\n  - { key: tackle, type: normal, category: physical, power: 40, accuracy: 100, pp: 35 }\n"
	const species = "species:\n  - { key: rattle, types: [normal], base_stats: { hp: 30, attack: 56, defense: 35, sp_attack: 25, sp_defense: 35, speed: 72 }, learnset: [{ move: tackle, level: 1 }] }\n"
	cases := map[string]string{
		"no moves":          species,
		"no species":        move,
		"duplicate move":    move + "  - { key: Tackle, type: normal, category: physical, power: 40, accuracy: 100, pp: 35 }\n" + species,
		"unknown type":      "moves:\n  - { key: tackle, type: cosmic, category: physical, power: 40, accuracy: 100, pp: 35 }\n" + species,
		"zero power":        "moves:\n  - { key: tackle, type: normal, category: physical, accuracy: 100, pp: 35 }\n" + species,
		"bad accuracy":      "moves:\n  - { key: tackle, type: normal, category: physical, power: 40, accuracy: 120, pp: 35 }\n" + species,
		"volatile status":   "moves:\n  - { key: tackle, type: normal, category: physical, power: 40, accuracy: 100, pp: 35, effects: { status: confusion } }\n" + species,
		"empty secondary":   "moves:\n  - { key: tackle, type: normal, category: physical, power: 40, accuracy: 100, pp: 35, secondaries: [{ chance: 10 }] }\n" + species,
		"unknown learnset":  move + "species:\n  - { key: rattle, types: [normal], base_stats: { hp: 30, attack: 56, defense: 35, sp_attack: 25, sp_defense: 35, speed: 72 }, learnset: [{ move: bite, level: 1 }] }\n",
		"no starter move":   move + "species:\n  - { key: rattle, types: [normal], base_stats: { hp: 30, attack: 56, defense: 35, sp_attack: 25, sp_defense: 35, speed: 72 }, learnset: [{ move: tackle, level: 5 }] }\n",
		"zero base stat":    move + "species:\n  - { key: rattle, types: [normal], base_stats: { hp: 30 }, learnset: [{ move: tackle, level: 1 }] }\n",
		"duplicate species": move + species + "  - { key: RATTLE, types: [normal], base_stats: { hp: 30, attack: 56, defense: 35, sp_attack: 25, sp_defense: 35, speed: 72 }, learnset: [{ move: tackle, level: 1 }] }\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestShippedCatalogLoads(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "data", "catalog.yaml"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(c.AllSpecies()), 8)

	for _, sp := range c.AllSpecies() {
		cr := game.NewCreature(sp, 5)
		assert.NotEmpty(t, cr.Moves, sp.Key)
		assert.LessOrEqual(t, len(cr.Moves), game.MaxNumMoves, sp.Key)
	}
	mc, err := c.Move("metal_claw")
	require.NoError(t, err)
	assert.Equal(t, game.TargetSelf, mc.Secondaries[0].Target)
}
