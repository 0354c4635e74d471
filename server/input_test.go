package server

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    ButtonEvent
		err     error
	}{
		{name: "press", payload: `{"type":"setButton","button":"right","value":true}`, want: ButtonEvent{PlayerID: "p1", Button: ButtonRight, Value: true}},
		{name: "release", payload: `{"type":"setButton","button":"attack","value":false}`, want: ButtonEvent{PlayerID: "p1", Button: ButtonAttack}},
		{name: "value defaults to false", payload: `{"type":"setButton","button":"up"}`, want: ButtonEvent{PlayerID: "p1", Button: ButtonUp}},
		{name: "not json", payload: `setButton right`, err: ErrMalformedMessage},
		{name: "value not bool", payload: `{"type":"setButton","button":"up","value":"yes"}`, err: ErrMalformedMessage},
		{name: "missing button", payload: `{"type":"setButton","value":true}`, err: ErrMalformedMessage},
		{name: "unknown type", payload: `{"type":"chat","text":"hi"}`, err: ErrIgnoredMessage},
		{name: "unknown button", payload: `{"type":"setButton","button":"jump","value":true}`, err: ErrIgnoredMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := ParseInput("p1", []byte(tc.payload))
			if tc.err != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, ev)
		})
	}
}

func TestParseButton(t *testing.T) {
	for i, name := range buttonNames {
		b, ok := ParseButton(name)
		require.True(t, ok)
		require.Equal(t, Button(i), b)
		require.Equal(t, name, b.String())
	}
	_, ok := ParseButton("Up")
	require.False(t, ok)
}

func TestButtonsAxis(t *testing.T) {
	var b Buttons
	dx, dy := b.Axis()
	require.Zero(t, dx)
	require.Zero(t, dy)

	b[ButtonLeft] = true
	b[ButtonDown] = true
	dx, dy = b.Axis()
	require.Equal(t, -1, dx)
	require.Equal(t, 1, dy)

	b[ButtonRight] = true
	b[ButtonUp] = true
	dx, dy = b.Axis()
	require.Zero(t, dx)
	require.Zero(t, dy)
}
