// Package client talks to a moodkeeperd journal service from a paired
// device.
package client

import (
	"context"

	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/journal"
	"github.com/dmitrijs2005/moodkeeper/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type GRPCClient struct {
	conn        *grpc.ClientConn
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withAccessToken(ctx, c.accessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient prepares a client for target that presents accessToken on
// every call. Extra options are applied after the defaults (plaintext
// transport, JSON codec).
func NewGRPCClient(target, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{accessToken: accessToken}

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
		grpc.WithChainUnaryInterceptor(c.accessTokenInterceptor),
	}
	dialOpts = append(dialOpts, opts...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) Analyze(ctx context.Context, text string) (*rpc.AnalyzeResponse, error) {
	resp := &rpc.AnalyzeResponse{}
	if err := c.conn.Invoke(ctx, rpc.MethodAnalyze, &rpc.AnalyzeRequest{Text: text}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *GRPCClient) CreateEntry(ctx context.Context, text string, health journal.HealthCorrelates, voice bool) (*rpc.CreateEntryResponse, error) {
	req := &rpc.CreateEntryRequest{Text: text, Health: health, VoiceTranscribed: voice}
	resp := &rpc.CreateEntryResponse{}
	if err := c.conn.Invoke(ctx, rpc.MethodCreateEntry, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *GRPCClient) ListEntries(ctx context.Context) (*rpc.ListEntriesResponse, error) {
	resp := &rpc.ListEntriesResponse{}
	if err := c.conn.Invoke(ctx, rpc.MethodListEntries, &rpc.ListEntriesRequest{}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *GRPCClient) DeleteEntry(ctx context.Context, id string) error {
	return c.conn.Invoke(ctx, rpc.MethodDeleteEntry, &rpc.DeleteEntryRequest{ID: id}, &rpc.DeleteEntryResponse{})
}
