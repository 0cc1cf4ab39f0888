package dto_test

import (
	"testing"

	"monopolydeal-server/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAction_KnownActions(t *testing.T) {
	cases := []struct {
		action string
		raw    string
		out    interface{}
	}{
		{"start_game", `{"player":"p1"}`, dto.StartGameRequest{Player: "p1"}},
		{"skip_turn", `{"player":"p1"}`, dto.SkipTurnRequest{Player: "p1"}},
		{"to_bank", `{"player":"p1","card":5}`, dto.ToBankRequest{Player: "p1", Card: 5}},
		{"house", `{"player":"p1","card":5}`, dto.ToBankRequest{Player: "p1", Card: 5}},
		{"pass_go", `{"player":"p1","card":5}`, dto.PassGoRequest{Player: "p1", Card: 5}},
	}

	for _, tc := range cases {
		t.Run(tc.action, func(t *testing.T) {
			got, err := dto.DecodeAction(tc.action, []byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.out, got)
		})
	}
}

func TestDecodeAction_UnknownActionErrors(t *testing.T) {
	_, err := dto.DecodeAction("teleport", []byte(`{}`))
	assert.Error(t, err)
}

func TestDecodeAction_MalformedPayloadErrors(t *testing.T) {
	_, err := dto.DecodeAction("to_bank", []byte(`not json`))
	assert.Error(t, err)
}
