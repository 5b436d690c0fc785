package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls the Packs service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) call(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) OpenPack(ctx context.Context, name string) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]any{"pack": name})
	if err != nil {
		return nil, err
	}
	return c.call(ctx, "OpenPack", in)
}

func (c *Client) Wallet(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, "Wallet", nil)
}

func (c *Client) Reset(ctx context.Context) (*structpb.Struct, error) {
	return c.call(ctx, "Reset", nil)
}

// Browse takes the same filter keys the server reads: q, tier, role, team.
func (c *Client) Browse(ctx context.Context, filter map[string]any) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(filter)
	if err != nil {
		return nil, err
	}
	return c.call(ctx, "Browse", in)
}
