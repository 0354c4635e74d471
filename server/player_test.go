package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testMotion = Motion{SpeedX: 6, SpeedY: 4}

func newTestPlayer() *Player {
	return NewPlayer("p1", Vec2{X: 100, Y: 100})
}

func punchTicks() int {
	d := StickmanAnim(AnimPunch, false)
	return d.NumIndices * d.FramesPerIndex
}

func TestPlayerInitialSnapshot(t *testing.T) {
	p := newTestPlayer()
	require.Equal(t, ActionIdle, p.Action)
	require.Equal(t, PlayerState{
		Position:  Vec2{X: 100, Y: 100},
		SpriteKey: "stickman",
		Index:     0,
	}, p.Snapshot())
}

func TestPlayerOpposingInputsCancel(t *testing.T) {
	p := newTestPlayer()
	p.SetButton(ButtonLeft, true)
	p.SetButton(ButtonRight, true)
	p.SetButton(ButtonUp, true)
	p.SetButton(ButtonDown, true)

	p.Update(testMotion)

	require.Equal(t, Vec2{X: 100, Y: 100}, p.Pos)
	require.False(t, p.FacingRight)
	require.Same(t, p.clocks[animSlot(AnimStand, false)], p.Anim())
}

func TestPlayerMovesWithSeparateAxisSpeeds(t *testing.T) {
	p := newTestPlayer()
	p.SetButton(ButtonRight, true)
	p.SetButton(ButtonDown, true)
	p.Update(testMotion)
	require.Equal(t, Vec2{X: 106, Y: 104}, p.Pos)

	p.SetButton(ButtonRight, false)
	p.SetButton(ButtonDown, false)
	p.SetButton(ButtonLeft, true)
	p.SetButton(ButtonUp, true)
	p.Update(testMotion)
	require.Equal(t, Vec2{X: 100, Y: 100}, p.Pos)
	require.False(t, p.FacingRight)
}

func TestPlayerFacingIsSticky(t *testing.T) {
	p := newTestPlayer()
	p.SetButton(ButtonRight, true)
	p.Update(testMotion)
	require.True(t, p.FacingRight)

	p.SetButton(ButtonRight, false)
	p.SetButton(ButtonUp, true)
	p.Update(testMotion)
	require.True(t, p.FacingRight)
	require.Equal(t, 96.0, p.Pos.Y)

	s := p.Snapshot()
	require.Equal(t, "stickmanR", s.SpriteKey)
	require.GreaterOrEqual(t, s.Index, 3)

	p.SetButton(ButtonUp, false)
	p.Update(testMotion)
	require.True(t, p.FacingRight)
	require.Same(t, p.clocks[animSlot(AnimStand, true)], p.Anim())
}

func TestPlayerLastWriteWins(t *testing.T) {
	p := newTestPlayer()
	p.SetButton(ButtonRight, true)
	p.SetButton(ButtonRight, false)
	p.Update(testMotion)
	require.Equal(t, 100.0, p.Pos.X)
	require.Equal(t, Buttons{}, p.Input())
}

func TestPlayerAttackCycle(t *testing.T) {
	p := newTestPlayer()
	p.SetButton(ButtonAttack, true)
	p.Update(testMotion)

	require.Equal(t, ActionAttacking, p.Action)
	require.Same(t, p.clocks[animSlot(AnimPunch, false)], p.Anim())
	require.Equal(t, 0, p.Anim().frame)
	require.Equal(t, 0, p.Anim().index)
	require.Equal(t, "stickmanAttacks", p.Snapshot().SpriteKey)

	p.SetButton(ButtonAttack, false)
	n := punchTicks()
	for i := 1; i < n; i++ {
		p.Update(testMotion)
		require.Equal(t, ActionAttacking, p.Action, "tick %d", i)
	}
	p.Update(testMotion)
	require.Equal(t, ActionIdle, p.Action)

	p.Update(testMotion)
	require.Same(t, p.clocks[animSlot(AnimStand, false)], p.Anim())
}

func TestPlayerAttackRestartsFromFirstPose(t *testing.T) {
	p := newTestPlayer()
	p.SetButton(ButtonAttack, true)
	for i := 0; i <= punchTicks(); i++ {
		p.Update(testMotion)
	}
	require.Equal(t, ActionIdle, p.Action)
	require.True(t, p.clocks[animSlot(AnimPunch, false)].Done())

	// 按键仍按住：下一 Tick 重新出拳，从第一个姿势开始
	p.Update(testMotion)
	require.Equal(t, ActionAttacking, p.Action)
	require.False(t, p.Anim().Done())
	require.Equal(t, 0, p.Snapshot().Index)
}

func TestPlayerMovesWhileAttacking(t *testing.T) {
	p := newTestPlayer()
	p.SetButton(ButtonAttack, true)
	p.SetButton(ButtonRight, true)
	p.Update(testMotion)
	require.Equal(t, ActionAttacking, p.Action)
	require.Equal(t, "stickmanAttacksR", p.Snapshot().SpriteKey)

	p.SetButton(ButtonAttack, false)
	p.Update(testMotion)
	p.Update(testMotion)
	require.Equal(t, ActionAttacking, p.Action)
	require.Equal(t, 118.0, p.Pos.X)
}

func TestPlayerTurnDuringAttackKeepsProgress(t *testing.T) {
	p := newTestPlayer()
	p.SetButton(ButtonAttack, true)
	p.Update(testMotion)
	p.SetButton(ButtonAttack, false)
	for i := 0; i < 4; i++ {
		p.Update(testMotion)
	}

	p.SetButton(ButtonRight, true)
	p.Update(testMotion)
	require.True(t, p.FacingRight)
	require.Equal(t, ActionAttacking, p.Action)
	s := p.Snapshot()
	require.Equal(t, "stickmanAttacksR", s.SpriteKey)
	require.Equal(t, 1, s.Index)

	remaining := punchTicks() - 5
	for i := 1; i < remaining; i++ {
		p.Update(testMotion)
		require.Equal(t, ActionAttacking, p.Action)
	}
	p.Update(testMotion)
	require.Equal(t, ActionIdle, p.Action)
}

func TestPlayerClampsToWorld(t *testing.T) {
	p := NewPlayer("p1", Vec2{X: 798, Y: 2})
	p.SetButton(ButtonRight, true)
	p.SetButton(ButtonUp, true)
	p.Update(Motion{SpeedX: 6, SpeedY: 4, Clamp: true, Width: 800, Height: 600})
	require.Equal(t, Vec2{X: 800, Y: 0}, p.Pos)
}

func TestActionString(t *testing.T) {
	require.Equal(t, "idle", ActionIdle.String())
	require.Equal(t, "attacking", ActionAttacking.String())
}
