package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "moodkeeper.JournalService"

// Full method names, as seen by interceptors.
const (
	MethodAnalyze     = "/" + ServiceName + "/Analyze"
	MethodCreateEntry = "/" + ServiceName + "/CreateEntry"
	MethodListEntries = "/" + ServiceName + "/ListEntries"
	MethodDeleteEntry = "/" + ServiceName + "/DeleteEntry"
)

// JournalServer is implemented by the service registered with
// JournalServiceDesc.
type JournalServer interface {
	Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error)
	CreateEntry(ctx context.Context, req *CreateEntryRequest) (*CreateEntryResponse, error)
	ListEntries(ctx context.Context, req *ListEntriesRequest) (*ListEntriesResponse, error)
	DeleteEntry(ctx context.Context, req *DeleteEntryRequest) (*DeleteEntryResponse, error)
}

var JournalServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*JournalServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Analyze", Handler: unaryHandler(MethodAnalyze, JournalServer.Analyze)},
		{MethodName: "CreateEntry", Handler: unaryHandler(MethodCreateEntry, JournalServer.CreateEntry)},
		{MethodName: "ListEntries", Handler: unaryHandler(MethodListEntries, JournalServer.ListEntries)},
		{MethodName: "DeleteEntry", Handler: unaryHandler(MethodDeleteEntry, JournalServer.DeleteEntry)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "moodkeeper/journal.json",
}

func RegisterJournalServer(s grpc.ServiceRegistrar, srv JournalServer) {
	s.RegisterService(&JournalServiceDesc, srv)
}

func unaryHandler[Req, Resp any](fullMethod string, call func(JournalServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(JournalServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(JournalServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
