package bank

import (
	"errors"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

const (
	// ModuleName is the name of the bank module.
	ModuleName = "bank"

	// StoreKey is the store key string for the bank module.
	StoreKey = ModuleName
)

var (
	BalancesPrefix = collections.NewPrefix(1)
	SupplyPrefix   = collections.NewPrefix(2)
)

// Keeper tracks the balances of plain string addresses and the total supply per denom.
type Keeper struct {
	Schema   collections.Schema
	Balances collections.Map[collections.Pair[string, string], sdkmath.Int]
	Supply   collections.Map[string, sdkmath.Int]
}

// NewKeeper returns a new bank Keeper.
func NewKeeper(storeService corestore.KVStoreService) Keeper {
	sb := collections.NewSchemaBuilder(storeService)
	k := Keeper{
		Balances: collections.NewMap(sb, BalancesPrefix, "balances", collections.PairKeyCodec(collections.StringKey, collections.StringKey), sdk.IntValue),
		Supply:   collections.NewMap(sb, SupplyPrefix, "supply", collections.StringKey, sdk.IntValue),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+ModuleName)
}

// GetBalance returns the balance of a single denom held by addr.
func (k Keeper) GetBalance(ctx sdk.Context, addr, denom string) sdk.Coin {
	amount, err := k.Balances.Get(ctx, collections.Join(addr, denom))
	if err != nil {
		return sdk.NewCoin(denom, sdkmath.ZeroInt())
	}
	return sdk.NewCoin(denom, amount)
}

// GetAllBalances returns every non zero balance held by addr, sorted by denom.
func (k Keeper) GetAllBalances(ctx sdk.Context, addr string) sdk.Coins {
	balances := sdk.NewCoins()
	err := k.Balances.Walk(ctx, collections.NewPrefixedPairRange[string, string](addr), func(key collections.Pair[string, string], amount sdkmath.Int) (bool, error) {
		balances = balances.Add(sdk.NewCoin(key.K2(), amount))
		return false, nil
	})
	if err != nil {
		panic(err)
	}
	return balances
}

// GetSupply returns the total supply of a denom.
func (k Keeper) GetSupply(ctx sdk.Context, denom string) sdk.Coin {
	amount, err := k.Supply.Get(ctx, denom)
	if err != nil {
		return sdk.NewCoin(denom, sdkmath.ZeroInt())
	}
	return sdk.NewCoin(denom, amount)
}

// SendCoins moves amt from one address to another.
func (k Keeper) SendCoins(ctx sdk.Context, fromAddr, toAddr string, amt sdk.Coins) error {
	if err := k.subUnlockedCoins(ctx, fromAddr, amt); err != nil {
		return err
	}
	if err := k.addCoins(ctx, toAddr, amt); err != nil {
		return err
	}

	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			EventTypeTransfer,
			sdk.NewAttribute(AttributeKeyRecipient, toAddr),
			sdk.NewAttribute(AttributeKeySender, fromAddr),
			sdk.NewAttribute(sdk.AttributeKeyAmount, amt.String()),
		),
	})

	return nil
}

// MintCoins creates amt out of thin air and credits it to addr.
func (k Keeper) MintCoins(ctx sdk.Context, addr string, amt sdk.Coins) error {
	if err := k.addCoins(ctx, addr, amt); err != nil {
		return err
	}
	for _, coin := range amt {
		if err := k.updateSupply(ctx, coin.Denom, coin.Amount); err != nil {
			return err
		}
	}

	k.Logger(ctx).Debug("minted coins", "amount", amt.String(), "to", addr)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeCoinMint,
		sdk.NewAttribute(AttributeKeyMinter, addr),
		sdk.NewAttribute(sdk.AttributeKeyAmount, amt.String()),
	))

	return nil
}

// BurnCoins removes amt from addr and from the total supply.
func (k Keeper) BurnCoins(ctx sdk.Context, addr string, amt sdk.Coins) error {
	if err := k.subUnlockedCoins(ctx, addr, amt); err != nil {
		return err
	}
	for _, coin := range amt {
		if err := k.updateSupply(ctx, coin.Denom, coin.Amount.Neg()); err != nil {
			return err
		}
	}

	k.Logger(ctx).Debug("burned coins", "amount", amt.String(), "from", addr)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeCoinBurn,
		sdk.NewAttribute(AttributeKeyBurner, addr),
		sdk.NewAttribute(sdk.AttributeKeyAmount, amt.String()),
	))

	return nil
}

// InitBalance overwrites the balances of addr with amt, adjusting the total supply.
func (k Keeper) InitBalance(ctx sdk.Context, addr string, amt sdk.Coins) error {
	if !amt.IsValid() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidCoins, amt.String())
	}

	for _, coin := range k.GetAllBalances(ctx, addr) {
		if err := k.subUnlockedCoins(ctx, addr, sdk.NewCoins(coin)); err != nil {
			return err
		}
		if err := k.updateSupply(ctx, coin.Denom, coin.Amount.Neg()); err != nil {
			return err
		}
	}

	return k.MintCoins(ctx, addr, amt)
}

func (k Keeper) addCoins(ctx sdk.Context, addr string, amt sdk.Coins) error {
	if !amt.IsValid() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidCoins, amt.String())
	}
	if addr == "" {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "address cannot be empty")
	}

	for _, coin := range amt {
		balance := k.GetBalance(ctx, addr, coin.Denom)
		if err := k.Balances.Set(ctx, collections.Join(addr, coin.Denom), balance.Amount.Add(coin.Amount)); err != nil {
			return err
		}
	}
	return nil
}

func (k Keeper) subUnlockedCoins(ctx sdk.Context, addr string, amt sdk.Coins) error {
	if !amt.IsValid() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidCoins, amt.String())
	}

	for _, coin := range amt {
		balance := k.GetBalance(ctx, addr, coin.Denom)
		if balance.Amount.LT(coin.Amount) {
			return errorsmod.Wrapf(sdkerrors.ErrInsufficientFunds, "spendable balance %s is smaller than %s", balance, coin)
		}

		newBalance := balance.Amount.Sub(coin.Amount)
		key := collections.Join(addr, coin.Denom)
		if newBalance.IsZero() {
			if err := k.Balances.Remove(ctx, key); err != nil {
				return err
			}
			continue
		}
		if err := k.Balances.Set(ctx, key, newBalance); err != nil {
			return err
		}
	}
	return nil
}

func (k Keeper) updateSupply(ctx sdk.Context, denom string, delta sdkmath.Int) error {
	supply, err := k.Supply.Get(ctx, denom)
	if errors.Is(err, collections.ErrNotFound) {
		supply = sdkmath.ZeroInt()
	} else if err != nil {
		return err
	}

	supply = supply.Add(delta)
	if supply.IsZero() {
		return k.Supply.Remove(ctx, denom)
	}
	return k.Supply.Set(ctx, denom, supply)
}
