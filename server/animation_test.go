package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnimClockNonLoopingCompletes(t *testing.T) {
	d := &AnimDescriptor{SpriteKey: "punch", StartIndex: 2, NumIndices: 6, FramesPerIndex: 3}
	c := NewAnimClock(d)

	for i := 0; i < d.FramesPerIndex*(d.NumIndices-1); i++ {
		c.Advance()
	}
	require.Equal(t, d.NumIndices-1, c.index)
	require.False(t, c.Done())

	for i := 0; i < d.FramesPerIndex; i++ {
		require.False(t, c.Done())
		c.Advance()
	}
	require.True(t, c.Done())
	require.Equal(t, d.NumIndices-1, c.index)
	require.Equal(t, d.StartIndex+d.NumIndices-1, c.DrawIndex())

	for i := 0; i < 10; i++ {
		c.Advance()
	}
	require.True(t, c.Done())
	require.Equal(t, d.NumIndices-1, c.index)
	require.Equal(t, 0, c.frame)
}

func TestAnimClockLoops(t *testing.T) {
	d := &AnimDescriptor{SpriteKey: "stand", StartIndex: 3, NumIndices: 3, FramesPerIndex: 4, Loop: true}
	c := NewAnimClock(d)
	period := d.NumIndices * d.FramesPerIndex

	for tick := 1; tick <= 3*period; tick++ {
		c.Advance()
		require.Equal(t, (tick/d.FramesPerIndex)%d.NumIndices, c.index, "tick %d", tick)
		require.False(t, c.Done())
	}
	require.Equal(t, 0, c.index)
	require.Equal(t, 0, c.frame)
	require.Equal(t, d.StartIndex, c.DrawIndex())
}

func TestAnimClockReset(t *testing.T) {
	for _, d := range stickmanAnims {
		c := NewAnimClock(d)
		for i := 0; i < 50; i++ {
			c.Advance()
		}
		c.Reset()
		require.Equal(t, 0, c.frame)
		require.Equal(t, 0, c.index)
		require.False(t, c.Done())
		require.Equal(t, d.StartIndex, c.DrawIndex())
		require.Equal(t, d.SpriteKey, c.SpriteKey())
	}
}

func TestStickmanAnimVariants(t *testing.T) {
	require.Equal(t, "stickman", StickmanAnim(AnimStand, false).SpriteKey)
	require.Equal(t, "stickmanR", StickmanAnim(AnimStand, true).SpriteKey)
	require.Equal(t, 3, StickmanAnim(AnimRun, true).StartIndex)
	require.Equal(t, "stickmanAttacks", StickmanAnim(AnimPunch, false).SpriteKey)
	require.Equal(t, "stickmanAttacksR", StickmanAnim(AnimPunch, true).SpriteKey)
	require.False(t, StickmanAnim(AnimPunch, true).Loop)
}
