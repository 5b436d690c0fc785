// Package rpc serves the pack game over gRPC. Messages are the protobuf
// well-known Struct type, so no generated code is involved.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/cricket-packs/internal/card"
	"github.com/xtding233/cricket-packs/internal/economy"
	"github.com/xtding233/cricket-packs/internal/pack"
)

const ServiceName = "packs.v1.Packs"

// Game is the part of economy.Engine the service uses.
type Game interface {
	Open(ctx context.Context, name string) (*economy.Result, error)
	Reset(ctx context.Context) economy.State
	Snapshot() economy.State
	Browse(f economy.Filter) []card.Card
}

type packsServer interface {
	OpenPack(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Wallet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Browse(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*packsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "OpenPack", Handler: unary("OpenPack", packsServer.OpenPack)},
		{MethodName: "Wallet", Handler: unary("Wallet", packsServer.Wallet)},
		{MethodName: "Reset", Handler: unary("Reset", packsServer.Reset)},
		{MethodName: "Browse", Handler: unary("Browse", packsServer.Browse)},
	},
	Metadata: "packs/v1/packs.proto",
}

func unary(method string, call func(packsServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	full := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(packsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(packsServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Register attaches the service to s.
func Register(s *grpc.Server, g Game) {
	s.RegisterService(&serviceDesc, &server{game: g})
}

type server struct {
	game Game
}

// OpenPack expects {"pack": "<name>"}.
func (s *server) OpenPack(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	name := strings.TrimSpace(in.GetFields()["pack"].GetStringValue())
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "pack is required")
	}
	res, err := s.game.Open(ctx, name)
	switch {
	case errors.Is(err, economy.ErrInsufficientFunds):
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, pack.ErrUnknownPack):
		return nil, status.Error(codes.NotFound, err.Error())
	case err != nil:
		return nil, status.Error(codes.Internal, err.Error())
	}
	return toStruct(map[string]any{
		"result":      res,
		"duplicates":  res.Duplicates(),
		"has_premium": res.HasPremium(),
		"balance":     res.Balance,
	})
}

func (s *server) Wallet(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return walletStruct(s.game.Snapshot())
}

func (s *server) Reset(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return walletStruct(s.game.Reset(ctx))
}

// Browse accepts optional "q", "tier", "role" and "team" fields.
func (s *server) Browse(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()
	f := economy.Filter{
		Query: fields["q"].GetStringValue(),
		Tier:  fields["tier"].GetStringValue(),
		Role:  fields["role"].GetStringValue(),
		Team:  fields["team"].GetStringValue(),
	}
	return toStruct(map[string]any{"cards": s.game.Browse(f)})
}

func walletStruct(st economy.State) (*structpb.Struct, error) {
	return toStruct(map[string]any{
		"coins":  st.Coins,
		"muted":  st.Muted,
		"unique": st.Unique(),
	})
}

// toStruct goes through JSON so struct tags decide the field names.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
