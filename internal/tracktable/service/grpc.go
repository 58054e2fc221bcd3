package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// TracktableServer is the server API for the TracktableService gRPC
// service. It is hand-written in the shape protoc-gen-go-grpc produces
// from tracktable.proto, since protoc itself cannot be invoked in this
// environment.
type TracktableServer interface {
	Nearest(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Cluster(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Simplify(context.Context, *structpb.Struct) (*structpb.Struct, error)
	mustEmbedUnimplementedTracktableServer()
}

// UnimplementedTracktableServer must be embedded by every
// implementation for forward compatibility: a server embedding it
// compiles against RPCs added to TracktableServer in the future without
// modification, the same guarantee protoc-gen-go-grpc's generated
// embed provides.
type UnimplementedTracktableServer struct{}

func (UnimplementedTracktableServer) Nearest(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Nearest not implemented")
}

func (UnimplementedTracktableServer) Cluster(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Cluster not implemented")
}

func (UnimplementedTracktableServer) Simplify(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Simplify not implemented")
}

func (UnimplementedTracktableServer) mustEmbedUnimplementedTracktableServer() {}

// RegisterTracktableServer registers srv with s under the
// tracktable.TracktableService service name.
func RegisterTracktableServer(s grpc.ServiceRegistrar, srv TracktableServer) {
	s.RegisterService(&tracktableServiceDesc, srv)
}

// RegisterService mirrors the teacher's RegisterService helper
// (internal/lidar/visualiser/grpc_server.go), a thin wrapper clients
// reach for instead of the generated Register* name directly.
func RegisterService(grpcServer *grpc.Server, server *Server) {
	RegisterTracktableServer(grpcServer, server)
}

func tracktableNearestHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TracktableServer).Nearest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/tracktable.TracktableService/Nearest"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TracktableServer).Nearest(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func tracktableClusterHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TracktableServer).Cluster(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/tracktable.TracktableService/Cluster"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TracktableServer).Cluster(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func tracktableSimplifyHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TracktableServer).Simplify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/tracktable.TracktableService/Simplify"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TracktableServer).Simplify(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var tracktableServiceDesc = grpc.ServiceDesc{
	ServiceName: "tracktable.TracktableService",
	HandlerType: (*TracktableServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Nearest", Handler: tracktableNearestHandler},
		{MethodName: "Cluster", Handler: tracktableClusterHandler},
		{MethodName: "Simplify", Handler: tracktableSimplifyHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tracktable.proto",
}
