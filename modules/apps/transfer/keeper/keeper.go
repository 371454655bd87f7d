package keeper

import (
	"errors"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/simibc/modules/apps/transfer/types"
	porttypes "github.com/cosmos/simibc/modules/core/05-port/types"
	"github.com/cosmos/simibc/modules/core/exported"
)

// Keeper defines the IBC fungible transfer keeper
type Keeper struct {
	storeService corestore.KVStoreService
	ics4Wrapper  porttypes.ICS4Wrapper
	bankKeeper   types.BankKeeper

	Schema      collections.Schema
	TotalEscrow collections.Map[string, sdkmath.Int]
}

// NewKeeper creates a new IBC transfer Keeper instance
func NewKeeper(
	storeService corestore.KVStoreService,
	ics4Wrapper porttypes.ICS4Wrapper,
	bankKeeper types.BankKeeper,
) Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		storeService: storeService,
		ics4Wrapper:  ics4Wrapper,
		bankKeeper:   bankKeeper,
		TotalEscrow:  collections.NewMap(sb, types.TotalEscrowPrefix, "total_escrow", collections.StringKey, sdk.IntValue),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// GetICS4Wrapper returns the ICS4Wrapper.
func (k Keeper) GetICS4Wrapper() porttypes.ICS4Wrapper {
	return k.ics4Wrapper
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName+"-"+types.ModuleName)
}

// GetTotalEscrowForDenom gets the total amount of source chain tokens that
// are in escrow, keyed by the denomination.
func (k Keeper) GetTotalEscrowForDenom(ctx sdk.Context, denom string) sdk.Coin {
	amount, err := k.TotalEscrow.Get(ctx, denom)
	if err != nil {
		if !errors.Is(err, collections.ErrNotFound) {
			panic(err)
		}
		return sdk.NewCoin(denom, sdkmath.ZeroInt())
	}
	return sdk.NewCoin(denom, amount)
}

// SetTotalEscrowForDenom stores the total amount of source chain tokens that are in escrow.
// Amount is stored in state if and only if it is not equal to zero. The function will panic
// if the amount is negative.
func (k Keeper) SetTotalEscrowForDenom(ctx sdk.Context, coin sdk.Coin) {
	if coin.Amount.IsNegative() {
		panic("amount cannot be negative")
	}

	var err error
	if coin.Amount.IsZero() {
		err = k.TotalEscrow.Remove(ctx, coin.Denom)
	} else {
		err = k.TotalEscrow.Set(ctx, coin.Denom, coin.Amount)
	}
	if err != nil {
		panic(err)
	}
}

// GetAllTotalEscrowed returns the escrow information for all the denominations.
func (k Keeper) GetAllTotalEscrowed(ctx sdk.Context) sdk.Coins {
	var escrows sdk.Coins
	if err := k.TotalEscrow.Walk(ctx, nil, func(denom string, amount sdkmath.Int) (bool, error) {
		escrows = escrows.Add(sdk.NewCoin(denom, amount))
		return false, nil
	}); err != nil {
		panic(err)
	}
	return escrows
}
