package keeper

import (
	"encoding/json"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cosmossdk.io/collections"

	sdk "github.com/cosmos/cosmos-sdk/types"

	connectiontypes "github.com/cosmos/simibc/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	"github.com/cosmos/simibc/modules/core/exported"
)

// Query answers a read-only request with a JSON encoded response. Missing records are
// reported with a NotFound status, malformed requests with an InvalidArgument status.
func (k *Keeper) Query(ctx sdk.Context, req exported.QueryRequest) ([]byte, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	if err := req.ValidateBasic(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	var (
		res any
		err error
	)
	switch req := req.(type) {
	case *channeltypes.QuerySendPacketRequest:
		res, err = k.PacketSends.Get(ctx, collections.Join3(req.PortID, req.ChannelID, req.Sequence))
	case *connectiontypes.QueryConnectedChainRequest:
		res, err = k.Connections.Get(ctx, req.ConnectionID)
	case *connectiontypes.QueryChainConnectionsRequest:
		var connections []connectiontypes.IdentifiedConnection
		connections, err = k.GetChainConnections(ctx, req.ChainID)
		res = connectiontypes.QueryChainConnectionsResponse{Connections: connections}
	case *channeltypes.QueryChannelInfoRequest:
		res, err = k.Channels.Get(ctx, collections.Join(req.PortID, req.ChannelID))
	case *channeltypes.QueryChannelRequest:
		res, err = k.queryChannel(ctx, req)
	case *channeltypes.QueryChannelsRequest:
		var channels []channeltypes.IdentifiedChannel
		channels, err = k.GetChannels(ctx, req.PortID)
		res = channeltypes.QueryChannelsResponse{Channels: channels}
	case *channeltypes.QueryPacketAcknowledgementRequest:
		res, err = k.PacketAcks.Get(ctx, collections.Join3(req.PortID, req.ChannelID, req.Sequence))
	default:
		return nil, status.Errorf(codes.Unimplemented, "unrecognized query request type: %T", req)
	}

	if errors.Is(err, collections.ErrNotFound) {
		return nil, status.Error(codes.NotFound, err.Error())
	} else if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return json.Marshal(res)
}

func (k *Keeper) queryChannel(ctx sdk.Context, req *channeltypes.QueryChannelRequest) (channeltypes.QueryChannelResponse, error) {
	channelInfo, err := k.Channels.Get(ctx, collections.Join(req.PortID, req.ChannelID))
	if errors.Is(err, collections.ErrNotFound) {
		return channeltypes.QueryChannelResponse{}, nil
	} else if err != nil {
		return channeltypes.QueryChannelResponse{}, err
	}

	return channeltypes.QueryChannelResponse{
		Channel: &channeltypes.IdentifiedChannel{
			PortID:      req.PortID,
			ChannelID:   req.ChannelID,
			ChannelInfo: channelInfo,
		},
	}, nil
}
