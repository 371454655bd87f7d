package simapp

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/simibc/modules/apps/transfer"
	transferkeeper "github.com/cosmos/simibc/modules/apps/transfer/keeper"
	transfertypes "github.com/cosmos/simibc/modules/apps/transfer/types"
	porttypes "github.com/cosmos/simibc/modules/core/05-port/types"
	host "github.com/cosmos/simibc/modules/core/24-host"
	ibcerrors "github.com/cosmos/simibc/modules/core/errors"
	"github.com/cosmos/simibc/modules/core/exported"
	ibckeeper "github.com/cosmos/simibc/modules/core/keeper"
	"github.com/cosmos/simibc/simapp/bank"
	"github.com/cosmos/simibc/testing/mock"
)

const (
	// DefaultChainID is the chain id of a SimApp created without WithChainID.
	DefaultChainID = "simapp-1"

	// BlockTime is the time added to the block header by NextBlock.
	BlockTime = 5 * time.Second
)

// DefaultGenesisTime is the block time of the first block of every SimApp.
var DefaultGenesisTime = time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

// Msg is a user message executed by SimApp.Execute.
type Msg interface {
	ValidateBasic() error
	GetSigner() string
}

// SimApp is a single simulated chain. It owns an in-memory multistore holding the state
// of the bank, ibc and transfer modules, and a block header acting as the logical clock.
// A SimApp is not safe for concurrent use.
type SimApp struct {
	logger log.Logger
	cms    storetypes.CommitMultiStore
	header cmtproto.Header
	keys   map[string]*storetypes.KVStoreKey

	genesisBalances map[string]sdk.Coins
	ibcModules      map[string]porttypes.IBCModule

	BankKeeper     bank.Keeper
	IBCKeeper      *ibckeeper.Keeper
	TransferKeeper transferkeeper.Keeper

	// MockApp holds the overridable callbacks of the module bound to the mock port.
	MockApp *mock.IBCApp
}

// Option configures a SimApp.
type Option func(*SimApp)

// WithChainID sets the chain id of the block header.
func WithChainID(chainID string) Option {
	return func(app *SimApp) {
		app.header.ChainID = chainID
	}
}

// WithLogger sets the logger handed to the keepers through the context.
func WithLogger(logger log.Logger) Option {
	return func(app *SimApp) {
		app.logger = logger
	}
}

// WithBlockHeader replaces the initial block header.
func WithBlockHeader(header cmtproto.Header) Option {
	return func(app *SimApp) {
		app.header = header
	}
}

// WithGenesisBalances funds accounts before the first block.
func WithGenesisBalances(balances map[string]sdk.Coins) Option {
	return func(app *SimApp) {
		for addr, coins := range balances {
			app.genesisBalances[addr] = app.genesisBalances[addr].Add(coins...)
		}
	}
}

// WithIBCModule binds an additional application to portID.
func WithIBCModule(portID string, module porttypes.IBCModule) Option {
	return func(app *SimApp) {
		app.ibcModules[portID] = module
	}
}

// New returns a SimApp at height 1 with the transfer and mock applications bound to
// their ports.
func New(opts ...Option) *SimApp {
	app := &SimApp{
		logger: log.NewNopLogger(),
		header: cmtproto.Header{
			ChainID: DefaultChainID,
			Height:  1,
			Time:    DefaultGenesisTime,
		},
		keys: storetypes.NewKVStoreKeys(
			host.StoreKey, bank.StoreKey, transfertypes.StoreKey,
		),
		genesisBalances: make(map[string]sdk.Coins),
		ibcModules:      make(map[string]porttypes.IBCModule),
		MockApp:         &mock.IBCApp{},
	}
	for _, opt := range opts {
		opt(app)
	}

	db := dbm.NewMemDB()
	app.cms = store.NewCommitMultiStore(db, app.logger, metrics.NewNoOpMetrics())
	for _, key := range app.keys {
		app.cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := app.cms.LoadLatestVersion(); err != nil {
		panic(fmt.Errorf("failed to load multistore: %w", err))
	}

	app.BankKeeper = bank.NewKeeper(runtime.NewKVStoreService(app.keys[bank.StoreKey]))
	app.IBCKeeper = ibckeeper.NewKeeper(runtime.NewKVStoreService(app.keys[host.StoreKey]))
	app.TransferKeeper = transferkeeper.NewKeeper(
		runtime.NewKVStoreService(app.keys[transfertypes.StoreKey]),
		app.IBCKeeper,
		app.BankKeeper,
	)

	ibcRouter := porttypes.NewRouter()
	ibcRouter.AddRoute(transfertypes.ModuleName, transfer.NewIBCModule(app.TransferKeeper))
	ibcRouter.AddRoute(mock.ModuleName, mock.NewIBCModule(app.MockApp))

	portIDs := make([]string, 0, len(app.ibcModules))
	for portID := range app.ibcModules {
		portIDs = append(portIDs, portID)
	}
	sort.Strings(portIDs)
	for _, portID := range portIDs {
		ibcRouter.AddRoute(portID, app.ibcModules[portID])
	}
	app.IBCKeeper.SetRouter(ibcRouter)

	if err := app.initGenesis(); err != nil {
		panic(fmt.Errorf("failed to initialize genesis: %w", err))
	}

	return app
}

func (app *SimApp) initGenesis() error {
	ctx := app.newContext()

	addrs := make([]string, 0, len(app.genesisBalances))
	for addr := range app.genesisBalances {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	for _, addr := range addrs {
		for _, coin := range app.genesisBalances[addr] {
			if err := transfertypes.ValidateNativeDenom(coin.Denom); err != nil {
				return err
			}
		}
		if err := app.BankKeeper.InitBalance(ctx, addr, app.genesisBalances[addr]); err != nil {
			return err
		}
	}

	app.cms.Commit()
	return nil
}

// ChainID returns the chain id of the block header.
func (app *SimApp) ChainID() string {
	return app.header.ChainID
}

// BlockHeight returns the height of the current block.
func (app *SimApp) BlockHeight() int64 {
	return app.header.Height
}

// BlockTime returns the time of the current block.
func (app *SimApp) BlockTime() time.Time {
	return app.header.Time
}

// NextBlock commits the state and advances the header by one block and BlockTime.
func (app *SimApp) NextBlock() {
	app.UpdateBlock(func(header *cmtproto.Header) {
		header.Height++
		header.Time = header.Time.Add(BlockTime)
	})
}

// UpdateBlock commits the state and lets fn move the block header.
func (app *SimApp) UpdateBlock(fn func(header *cmtproto.Header)) {
	app.cms.Commit()
	fn(&app.header)
}

// Context returns a context on the committed and pending state of the chain. Writes
// through the returned context are not discarded.
func (app *SimApp) Context() sdk.Context {
	return app.newContext()
}

func (app *SimApp) newContext() sdk.Context {
	return sdk.NewContext(app.cms, app.header, false, app.logger)
}

// Sudo runs a privileged ibc message. The state changes of a failed message are
// discarded. The events of a successful message are returned in the result along with
// the message response.
func (app *SimApp) Sudo(msg exported.SudoMsg) (*sdk.Result, error) {
	return app.runMsg(func(ctx sdk.Context) ([]byte, error) {
		return app.IBCKeeper.Sudo(ctx, msg)
	})
}

// Execute runs a user message signed by its sender.
func (app *SimApp) Execute(msg Msg) (*sdk.Result, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	return app.runMsg(func(ctx sdk.Context) ([]byte, error) {
		switch msg := msg.(type) {
		case *transfertypes.MsgTransfer:
			res, err := app.TransferKeeper.Transfer(ctx, msg)
			if err != nil {
				return nil, err
			}
			return json.Marshal(res)
		case *bank.MsgSend:
			return nil, app.BankKeeper.SendCoins(ctx, msg.FromAddress, msg.ToAddress, msg.Amount)
		default:
			return nil, errorsmod.Wrapf(ibcerrors.ErrUnknownRequest, "unrecognized message type: %T", msg)
		}
	})
}

// Query answers a read-only ibc request against the current state.
func (app *SimApp) Query(req exported.QueryRequest) ([]byte, error) {
	ctx := sdk.NewContext(app.cms.CacheMultiStore(), app.header, false, app.logger)
	return app.IBCKeeper.Query(ctx, req)
}

// GetBalance returns the balance of denom held by addr.
func (app *SimApp) GetBalance(addr, denom string) sdk.Coin {
	return app.BankKeeper.GetBalance(app.newContext(), addr, denom)
}

// GetAllBalances returns every balance held by addr.
func (app *SimApp) GetAllBalances(addr string) sdk.Coins {
	return app.BankKeeper.GetAllBalances(app.newContext(), addr)
}

func (app *SimApp) runMsg(handler func(ctx sdk.Context) ([]byte, error)) (*sdk.Result, error) {
	ctx := app.newContext()
	cacheCtx, writeFn := ctx.CacheContext()

	data, err := handler(cacheCtx)
	if err != nil {
		return nil, err
	}
	writeFn()

	return &sdk.Result{
		Data:   data,
		Events: ctx.EventManager().ABCIEvents(),
	}, nil
}
