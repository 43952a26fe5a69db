package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "mapgen.api.v1alpha1.MapService"

// Full method names
const (
	MapServiceGenerateMapFullMethodName      = "/" + ServiceName + "/GenerateMap"
	MapServiceGetMapFullMethodName           = "/" + ServiceName + "/GetMap"
	MapServiceListMapsFullMethodName         = "/" + ServiceName + "/ListMaps"
	MapServiceDeleteMapFullMethodName        = "/" + ServiceName + "/DeleteMap"
	MapServiceListTemplateSetsFullMethodName = "/" + ServiceName + "/ListTemplateSets"
)

// MapServiceServer is the server API for the map service.
// Requests and responses are JSON-shaped structpb documents.
type MapServiceServer interface {
	GenerateMap(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetMap(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListMaps(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteMap(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTemplateSets(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterMapServiceServer registers srv on s
func RegisterMapServiceServer(s grpc.ServiceRegistrar, srv MapServiceServer) {
	s.RegisterService(&MapServiceDesc, srv)
}

type unaryCall func(MapServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MapServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MapServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// MapServiceDesc is the grpc.ServiceDesc for the map service
var MapServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MapServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateMap",
			Handler:    unaryHandler(MapServiceGenerateMapFullMethodName, MapServiceServer.GenerateMap),
		},
		{
			MethodName: "GetMap",
			Handler:    unaryHandler(MapServiceGetMapFullMethodName, MapServiceServer.GetMap),
		},
		{
			MethodName: "ListMaps",
			Handler:    unaryHandler(MapServiceListMapsFullMethodName, MapServiceServer.ListMaps),
		},
		{
			MethodName: "DeleteMap",
			Handler:    unaryHandler(MapServiceDeleteMapFullMethodName, MapServiceServer.DeleteMap),
		},
		{
			MethodName: "ListTemplateSets",
			Handler:    unaryHandler(MapServiceListTemplateSetsFullMethodName, MapServiceServer.ListTemplateSets),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mapgen/api/v1alpha1/map_service",
}

// MapServiceClient is the client API for the map service
type MapServiceClient interface {
	GenerateMap(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetMap(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListMaps(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteMap(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListTemplateSets(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type mapServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMapServiceClient creates a client on an established connection
func NewMapServiceClient(cc grpc.ClientConnInterface) MapServiceClient {
	return &mapServiceClient{cc: cc}
}

func (c *mapServiceClient) invoke(
	ctx context.Context,
	method string,
	in *structpb.Struct,
	opts []grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mapServiceClient) GenerateMap(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, MapServiceGenerateMapFullMethodName, in, opts)
}

func (c *mapServiceClient) GetMap(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MapServiceGetMapFullMethodName, in, opts)
}

func (c *mapServiceClient) ListMaps(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MapServiceListMapsFullMethodName, in, opts)
}

func (c *mapServiceClient) DeleteMap(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, MapServiceDeleteMapFullMethodName, in, opts)
}

func (c *mapServiceClient) ListTemplateSets(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, MapServiceListTemplateSetsFullMethodName, in, opts)
}
