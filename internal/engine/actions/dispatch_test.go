package actions_test

import (
	"testing"

	"monopolydeal-server/internal/delivery/dto"
	"monopolydeal-server/internal/engine/actions"

	"github.com/stretchr/testify/assert"
)

func TestApply_UnsupportedActionErrors(t *testing.T) {
	g := newTestGame(t)
	err := actions.Apply(g, "teleport", dto.SkipTurnRequest{Player: g.CurrentPlayer().ID})
	assert.Error(t, err)
}

func TestApply_SkipTurnRoutesToGame(t *testing.T) {
	g := newTestGame(t)
	current := g.CurrentPlayer().ID

	err := actions.Apply(g, "skip_turn", dto.SkipTurnRequest{Player: current})
	assert.NoError(t, err)
	assert.NotEqual(t, current, g.CurrentPlayer().ID)
}
