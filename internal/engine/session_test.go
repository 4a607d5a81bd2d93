package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/pocket-arena/internal/game"
)

func TestBeginRejectsUnusableParties(t *testing.T) {
	fainted := newCreature("Alpha", 50, 10, tackle)
	fainted.HP = 0
	healthy := newCreature("Beta", 30, 10, tackle)

	_, err := Begin(Setup{Player: game.NewParty(fainted), Wild: healthy})
	assert.ErrorIs(t, err, ErrInvalidPartyState)

	_, err = Begin(Setup{Player: game.NewParty(), Wild: healthy})
	assert.ErrorIs(t, err, ErrInvalidPartyState)

	_, err = Begin(Setup{Player: game.NewParty(healthy), Wild: fainted})
	assert.ErrorIs(t, err, ErrInvalidPartyState)

	_, err = Begin(Setup{Player: game.NewParty(healthy), Trainer: game.NewParty(fainted)})
	assert.ErrorIs(t, err, ErrInvalidPartyState)

	_, err = Begin(Setup{Player: game.NewParty(healthy)})
	assert.ErrorIs(t, err, ErrInvalidPartyState)
}

func TestBeginSkipsFaintedLeadAndNarratesIntro(t *testing.T) {
	lead := newCreature("Alpha", 50, 10, tackle)
	lead.HP = 0
	second := newCreature("Gamma", 50, 10, tackle)
	s, err := Begin(Setup{Player: game.NewParty(lead, second), Wild: newCreature("Beta", 30, 10, tackle), Rand: highRand{}})
	require.NoError(t, err)

	idx, c := s.Active(SidePlayer)
	assert.Equal(t, 1, idx)
	assert.Same(t, second, c)
	assert.Equal(t, StateActionSelection, s.State())
	assert.Equal(t, 1, s.Round())

	events := s.Events()
	assert.Equal(t, []string{"A wild Beta appeared."}, narration(events))
	req, ok := lastEvent[ChoiceRequested](events)
	require.True(t, ok)
	assert.Equal(t, ChoiceAction, req.Request.Kind)
	assert.Empty(t, s.Events(), "events are drained")
}

func TestTrainerIntro(t *testing.T) {
	s, err := Begin(Setup{
		PlayerName: "Ash", Player: game.NewParty(newCreature("Alpha", 50, 10, tackle)),
		TrainerName: "Red", Trainer: game.NewParty(newCreature("Beta", 30, 10, tackle)),
		Rand: highRand{},
	})
	require.NoError(t, err)
	assert.Equal(t, KindTrainer, s.Kind())
	assert.Equal(t, []string{"Red would like to battle", "Red sent out Beta", "Go Alpha!"}, narration(s.Events()))
}

func TestFasterCreatureMovesFirstAndDamageFollowsFormula(t *testing.T) {
	a := newCreature("Alpha", 50, 50, tackle)
	b := newCreature("Beta", 30, 50, tackle)
	s := beginWild(t, highRand{}, b, a)

	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
	lines := narration(s.Events())

	first, second := indexOf(lines, "Alpha used Tackle"), indexOf(lines, "Beta used Tackle")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)

	// Level 50, power 40, attack 30 vs defense 30, no crit, full roll:
	// floor((2*50/5+2) * 40 * 1 / 50 + 2) = 19.
	want := ComputeDamage(tackle, a, b, 1)
	assert.Equal(t, 19, want)
	assert.Equal(t, b.MaxHP()-want, b.HP)
	assert.Equal(t, a.MaxHP()-want, a.HP)
	assert.Equal(t, 34, a.Moves[0].PP)
	assert.Equal(t, 2, s.Round())
	assert.Equal(t, StateActionSelection, s.State())
}

func TestPriorityBeatsSpeed(t *testing.T) {
	a := newCreature("Alpha", 50, 50, tackle)
	b := newCreature("Beta", 30, 50, quickAttack)
	s := beginWild(t, highRand{}, b, a)

	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
	lines := narration(s.Events())
	assert.Less(t, indexOf(lines, "Beta used Quick Attack"), indexOf(lines, "Alpha used Tackle"))
}

func TestSpeedTieFavorsPlayer(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		a := newCreature("Alpha", 40, 50, tackle)
		b := newCreature("Beta", 40, 50, tackle)
		s := beginWild(t, newPCG(seed), b, a)

		require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
		lines := narration(s.Events())
		assert.Less(t, indexOf(lines, "Alpha used Tackle"), indexOf(lines, "Beta used Tackle"), "seed %d", seed)
	}
}

func TestStatusMoveOnlyChangesCasterStage(t *testing.T) {
	a := newCreature("Alpha", 50, 50, harden)
	b := newCreature("Beta", 30, 50, splash)
	s := beginWild(t, highRand{}, b, a)

	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
	events := s.Events()

	assert.Equal(t, 1, a.Stages[game.StatDefense])
	for st := game.StatAttack; st < game.NumStats; st++ {
		if st != game.StatDefense {
			assert.Zero(t, a.Stages[st], st.String())
		}
		assert.Zero(t, b.Stages[st], st.String())
	}
	assert.Equal(t, a.MaxHP(), a.HP)
	assert.Equal(t, b.MaxHP(), b.HP)
	for _, e := range events {
		_, isHP := e.(HPChanged)
		assert.False(t, isHP, "no HP change expected")
	}
	lines := narration(events)
	assert.Equal(t, []string{"Alpha used Harden", "Alpha's defense rose!", "Beta used Splash"}, lines)
}

func TestZeroPPMoveIsRejected(t *testing.T) {
	a := newCreature("Alpha", 50, 10, tackle)
	a.Moves[0].PP = 0
	s := beginWild(t, highRand{}, newCreature("Beta", 30, 10, tackle), a)

	err := s.SubmitAction(SidePlayer, UseMove(0))
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.ErrorIs(t, s.SubmitAction(SidePlayer, UseMove(4)), ErrInvalidAction)
	assert.Equal(t, StateActionSelection, s.State())
	assert.Equal(t, 1, s.Round())
	assert.Empty(t, s.Events())
}

func TestMissStillSpendsPP(t *testing.T) {
	a := newCreature("Alpha", 50, 50, wildSwing)
	s := beginWild(t, highRand{}, newCreature("Beta", 30, 50, tackle), a)

	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
	lines := narration(s.Events())
	assert.Contains(t, lines, "Alpha's attack missed")
	assert.Equal(t, wildSwing.PP-1, a.Moves[0].PP)
}

func TestParalysisPreventsMoveWithoutSpendingPP(t *testing.T) {
	a := newCreature("Alpha", 50, 50, tackle)
	require.True(t, a.SetStatus(game.ConditionParalysis, highRand{}))
	b := newCreature("Beta", 30, 50, tackle)
	// opponent move pick, then the paralysis roll
	s := beginWild(t, &scriptRand{vals: []int{0, 0}}, b, a)

	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
	lines := narration(s.Events())
	assert.Contains(t, lines, "Alpha's paralyzed and can't move")
	assert.NotContains(t, lines, "Alpha used Tackle")
	assert.Contains(t, lines, "Beta used Tackle")
	assert.Equal(t, tackle.PP, a.Moves[0].PP)
	assert.Equal(t, b.MaxHP(), b.HP)
}

func TestSecondaryEffectsRollIndependently(t *testing.T) {
	a := newCreature("Alpha", 50, 50, ember, nuzzle)
	b := newCreature("Beta", 30, 50, splash)
	s := beginWild(t, highRand{}, b, a)

	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
	events := s.Events()
	assert.Equal(t, game.ConditionBurn, b.Status)
	sc, ok := lastEvent[StatusChanged](events)
	require.True(t, ok)
	assert.Equal(t, Ref{Side: SideOpponent, Index: 0}, sc.Ref)
	lines := narration(events)
	assert.Contains(t, lines, "Beta has been burned")
	assert.Contains(t, lines, "Beta hurt itself due to burn")

	b.CureStatus()
	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(1)))
	s.Events()
	assert.Equal(t, game.ConditionNone, b.Status, "a 10% secondary does not fire on a top roll")
}

func TestTypeImmunityDealsNoDamage(t *testing.T) {
	a := newCreature("Alpha", 50, 50, tackle)
	ghostSp := newSpecies("Shade", 30, splash)
	ghostSp.Type1 = game.TypeGhost
	b := game.NewCreature(ghostSp, 50)
	s := beginWild(t, highRand{}, b, a)

	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
	lines := narration(s.Events())
	assert.Contains(t, lines, "It doesn't affect Shade...")
	assert.Equal(t, b.MaxHP(), b.HP)
	assert.Equal(t, tackle.PP-1, a.Moves[0].PP)
}

func TestPoisonFaintEndsBattleBeforeSecondAction(t *testing.T) {
	a := newCreature("Alpha", 50, 50, splash)
	a.SetStatus(game.ConditionPoison, highRand{})
	a.HP = 1
	s := beginWild(t, highRand{}, newCreature("Beta", 30, 50, tackle), a)

	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
	events := s.Events()
	lines := narration(events)
	assert.Contains(t, lines, "Alpha hurt itself due to poison")
	assert.Contains(t, lines, "Alpha fainted")
	assert.NotContains(t, lines, "Beta used Tackle")
	assert.True(t, s.Over())
	assert.Equal(t, OutcomeLost, s.Outcome())
	ended, ok := lastEvent[BattleEnded](events)
	require.True(t, ok)
	assert.Equal(t, SideOpponent, ended.Winner)
}

func TestSecondActorHitsReplacement(t *testing.T) {
	lead := newCreature("Lead", 90, 50, splash)
	lead.SetStatus(game.ConditionPoison, highRand{})
	lead.HP = 1
	bench := newCreature("Bench", 50, 50, tackle)
	foe := newCreature("Foe", 10, 50, tackle)
	s := beginWild(t, highRand{}, foe, lead, bench)

	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
	lines := narration(s.Events())
	assert.Contains(t, lines, "Lead fainted")
	assert.NotContains(t, lines, "Foe used Tackle")
	require.Equal(t, StatePartySelection, s.State())

	require.NoError(t, s.ProvideChoice(PartyMember(1)))
	lines = narration(s.Events())
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, []string{"Go Bench!", "Foe used Tackle"}, lines[:2])
	assert.Less(t, bench.HP, bench.MaxHP())
	assert.Equal(t, tackle.PP-1, foe.Moves[0].PP)
	assert.Equal(t, StateActionSelection, s.State())
	assert.Equal(t, 2, s.Round())
}

func TestConfusionSelfHitFaintsAttacker(t *testing.T) {
	a := newCreature("Alpha", 50, 50, tackle)
	require.True(t, a.SetVolatile(game.ConditionConfusion, highRand{}))
	a.HP = 1
	s := beginWild(t, highRand{}, newCreature("Beta", 30, 50, tackle), a)

	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
	lines := narration(s.Events())
	assert.Contains(t, lines, "Alpha is confused")
	hurt := indexOf(lines, "It hurt itself due to confusion")
	require.GreaterOrEqual(t, hurt, 0)
	assert.Less(t, hurt, indexOf(lines, "Alpha fainted"))
	assert.NotContains(t, lines, "Alpha used Tackle")
	assert.NotContains(t, lines, "Beta used Tackle")
	assert.Equal(t, tackle.PP, a.Moves[0].PP)
	assert.Equal(t, OutcomeLost, s.Outcome())
	assert.Empty(t, a.Volatiles, "battle end clears volatiles")
}

func TestBattleEndClearsBattleState(t *testing.T) {
	a := newCreature("Alpha", 50, 10, tackle)
	s := beginWild(t, highRand{}, newCreature("Beta", 30, 10, tackle), a)
	require.True(t, a.SetVolatile(game.ConditionConfusion, highRand{}))
	a.Stages[game.StatDefense] = 3

	require.NoError(t, s.Forfeit())
	assert.Empty(t, a.Volatiles)
	assert.Zero(t, a.Stages[game.StatDefense])
}

func TestMenuNavigation(t *testing.T) {
	s := beginWild(t, highRand{}, newCreature("Beta", 30, 10, tackle), newCreature("Alpha", 50, 10, tackle))

	require.NoError(t, s.SubmitAction(SidePlayer, OpenMoves()))
	assert.Equal(t, StateMoveSelection, s.State())
	req, ok := lastEvent[ChoiceRequested](s.Events())
	require.True(t, ok)
	assert.Equal(t, ChoiceMove, req.Request.Kind)
	assert.Equal(t, []string{"Tackle 35/35"}, req.Request.Options)

	assert.ErrorIs(t, s.SubmitAction(SidePlayer, Run()), ErrInvalidAction)
	require.NoError(t, s.SubmitAction(SidePlayer, Back()))
	assert.Equal(t, StateActionSelection, s.State())
	assert.Equal(t, 1, s.Round())
	assert.ErrorIs(t, s.SubmitAction(SidePlayer, Back()), ErrInvalidAction)

	require.NoError(t, s.SubmitAction(SidePlayer, OpenMoves()))
	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
	assert.Equal(t, 2, s.Round())
}

func TestSwitchAction(t *testing.T) {
	p1 := newCreature("Alpha", 50, 50, tackle)
	p2 := newCreature("Gamma", 50, 50, tackle)
	s := beginWild(t, highRand{}, newCreature("Beta", 30, 50, tackle), p1, p2)

	assert.ErrorIs(t, s.SubmitAction(SidePlayer, SwitchTo(0)), ErrInvalidAction, "already in battle")
	assert.ErrorIs(t, s.SubmitAction(SidePlayer, SwitchTo(2)), ErrInvalidAction)
	p2.HP = 0
	assert.ErrorIs(t, s.SubmitAction(SidePlayer, SwitchTo(1)), ErrInvalidAction, "fainted")
	p2.HP = p2.MaxHP()

	p1.Stages[game.StatAttack] = 2
	require.True(t, p1.SetVolatile(game.ConditionConfusion, highRand{}))
	require.NoError(t, s.SubmitAction(SidePlayer, OpenParty()))
	assert.Equal(t, StatePartySelection, s.State())
	require.NoError(t, s.SubmitAction(SidePlayer, SwitchTo(1)))

	events := s.Events()
	lines := narration(events)
	assert.Equal(t, []string{"Come back Alpha", "Go Gamma!", "Beta used Tackle"}, lines)
	idx, _ := s.Active(SidePlayer)
	assert.Equal(t, 1, idx)
	assert.Zero(t, p1.Stages[game.StatAttack], "withdrawal resets stages")
	assert.Empty(t, p1.Volatiles, "withdrawal clears volatiles")
	hp, ok := lastEvent[HPChanged](events)
	require.True(t, ok)
	assert.Equal(t, Ref{Side: SidePlayer, Index: 1}, hp.Ref)
	assert.Less(t, p2.HP, p2.MaxHP())
}

func TestInputAfterBattleOver(t *testing.T) {
	s := beginWild(t, highRand{}, newCreature("Beta", 30, 10, tackle), newCreature("Alpha", 50, 10, tackle))
	assert.ErrorIs(t, s.ProvideChoice(Yes()), ErrNoPendingChoice)

	require.NoError(t, s.Forfeit())
	assert.Equal(t, OutcomeForfeited, s.Outcome())
	assert.Equal(t, SideOpponent, s.Winner())
	assert.ErrorIs(t, s.SubmitAction(SidePlayer, UseMove(0)), ErrBattleOver)
	assert.ErrorIs(t, s.ProvideChoice(Yes()), ErrBattleOver)
	assert.ErrorIs(t, s.Forfeit(), ErrBattleOver)
}

func TestExternalOpponent(t *testing.T) {
	a := newCreature("Alpha", 50, 50, tackle)
	b := newCreature("Beta", 30, 50, tackle, splash)
	s, err := Begin(Setup{Player: game.NewParty(a), Wild: b, ExternalOpponent: true, Rand: highRand{}})
	require.NoError(t, err)
	s.Events()

	assert.ErrorIs(t, s.SubmitAction(SideOpponent, Run()), ErrInvalidAction)
	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
	assert.Empty(t, narration(s.Events()), "waits for the opponent")
	assert.ErrorIs(t, s.SubmitAction(SidePlayer, UseMove(0)), ErrInvalidAction)

	require.NoError(t, s.SubmitAction(SideOpponent, UseMove(1)))
	lines := narration(s.Events())
	assert.Equal(t, []string{"Alpha used Tackle", "Beta used Splash"}, lines)
	assert.Equal(t, 2, s.Round())
}

func TestEngineControlledOpponentRejectsSubmissions(t *testing.T) {
	s := beginWild(t, highRand{}, newCreature("Beta", 30, 10, tackle), newCreature("Alpha", 50, 10, tackle))
	assert.ErrorIs(t, s.SubmitAction(SideOpponent, UseMove(0)), ErrInvalidAction)
}

func TestOpponentWithoutPPLosesItsAction(t *testing.T) {
	b := newCreature("Beta", 30, 50, tackle)
	b.Moves[0].PP = 0
	s := beginWild(t, highRand{}, b, newCreature("Alpha", 50, 50, splash))

	require.NoError(t, s.SubmitAction(SidePlayer, UseMove(0)))
	assert.Contains(t, narration(s.Events()), "Beta has no moves left!")
}

func TestSnapshot(t *testing.T) {
	a := newCreature("Alpha", 50, 50, tackle)
	s := beginWild(t, highRand{}, newCreature("Beta", 30, 50, tackle), a)
	a.Stages[game.StatSpeed] = -1

	snap := s.Snapshot()
	assert.Equal(t, KindWild, snap.Kind)
	assert.Equal(t, "Ash", snap.Player.Name)
	assert.Equal(t, "wild Beta", snap.Opponent.Name)
	require.Len(t, snap.Player.Members, 1)
	assert.Equal(t, map[string]int{"speed": -1}, snap.Player.Members[0].Stages)
	assert.Equal(t, 35, snap.Player.Members[0].Moves[0].PP)
	assert.Nil(t, snap.Winner)
	assert.False(t, snap.Over)
}
