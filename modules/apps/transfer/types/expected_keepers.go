package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper defines the expected bank keeper
type BankKeeper interface {
	SendCoins(ctx sdk.Context, fromAddr, toAddr string, amt sdk.Coins) error
	MintCoins(ctx sdk.Context, addr string, amt sdk.Coins) error
	BurnCoins(ctx sdk.Context, addr string, amt sdk.Coins) error
	GetBalance(ctx sdk.Context, addr, denom string) sdk.Coin
}
