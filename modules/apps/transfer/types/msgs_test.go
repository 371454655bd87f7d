package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"

	"github.com/cosmos/simibc/modules/apps/transfer/types"
)

func TestMsgTransferValidateBasic(t *testing.T) {
	coin := sdk.NewCoin("ufund", sdkmath.NewInt(100))
	timeoutHeight := clienttypes.NewHeight(0, 100)

	testCases := []struct {
		name   string
		msg    *types.MsgTransfer
		expErr bool
	}{
		{"valid msg", types.NewMsgTransfer(types.PortID, "channel-0", coin, sender, recv, timeoutHeight, 0, ""), false},
		{"valid msg with timestamp timeout", types.NewMsgTransfer(types.PortID, "channel-0", coin, sender, recv, clienttypes.ZeroHeight(), 100, ""), false},
		{"valid voucher", types.NewMsgTransfer(types.PortID, "channel-0", sdk.NewCoin("ibc/channel-0/ufund", sdkmath.NewInt(1)), sender, recv, timeoutHeight, 0, ""), false},
		{"invalid port", types.NewMsgTransfer("p", "channel-0", coin, sender, recv, timeoutHeight, 0, ""), true},
		{"invalid channel", types.NewMsgTransfer(types.PortID, "", coin, sender, recv, timeoutHeight, 0, ""), true},
		{"zero amount", types.NewMsgTransfer(types.PortID, "channel-0", sdk.NewCoin("ufund", sdkmath.ZeroInt()), sender, recv, timeoutHeight, 0, ""), true},
		{"missing sender", types.NewMsgTransfer(types.PortID, "channel-0", coin, "", recv, timeoutHeight, 0, ""), true},
		{"missing receiver", types.NewMsgTransfer(types.PortID, "channel-0", coin, sender, " ", timeoutHeight, 0, ""), true},
		{"missing timeout", types.NewMsgTransfer(types.PortID, "channel-0", coin, sender, recv, clienttypes.ZeroHeight(), 0, ""), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.expErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
