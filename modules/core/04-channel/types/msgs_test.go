package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cosmos/simibc/modules/core/04-channel/types"
)

func TestMsgOpenChannelValidateBasic(t *testing.T) {
	testCases := []struct {
		name    string
		msg     *types.MsgOpenChannel
		expPass bool
		expTry  bool
	}{
		{"init", types.NewMsgChannelOpenInit("connection-0", "transfer", "ics20-1", types.ORDERED, "transfer"), true, false},
		{"init without version", types.NewMsgChannelOpenInit("connection-0", "transfer", "", types.UNORDERED, "transfer"), true, false},
		{
			"try", types.NewMsgChannelOpenTry("connection-0", "transfer", "ics20-1", types.ORDERED, types.NewEndpoint("transfer", "channel-0"), "ics20-1"),
			true, true,
		},
		{
			"try without counterparty channel", types.NewMsgChannelOpenTry("connection-0", "transfer", "ics20-1", types.ORDERED, types.NewEndpoint("transfer", ""), "ics20-1"),
			false, true,
		},
		{
			"init with counterparty channel", &types.MsgOpenChannel{
				ConnectionID: "connection-0", PortID: "transfer", Order: types.ORDERED,
				Counterparty: types.NewEndpoint("transfer", "channel-0"),
			},
			false, false,
		},
		{"invalid ordering", types.NewMsgChannelOpenInit("connection-0", "transfer", "ics20-1", types.Order(0), "transfer"), false, false},
		{"invalid connection", types.NewMsgChannelOpenInit("conn", "transfer", "ics20-1", types.ORDERED, "transfer"), false, false},
		{"invalid port", types.NewMsgChannelOpenInit("connection-0", "a", "ics20-1", types.ORDERED, "transfer"), false, false},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.expTry, tc.msg.IsTry(), tc.name)

		err := tc.msg.ValidateBasic()
		if tc.expPass {
			require.NoError(t, err, tc.name)
		} else {
			require.Error(t, err, tc.name)
		}
	}
}

func TestMsgAcknowledgePacketRequiresAck(t *testing.T) {
	msg := types.NewMsgAcknowledgePacket(types.PacketData{}, nil)
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrInvalidAcknowledgement)
}
