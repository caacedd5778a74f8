package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Service names on the wire. Method full names follow the usual
// /<service>/<method> form.
const (
	DirectoryServiceName = "directory.v1.DirectoryService"
	TrackingServiceName  = "tracking.v1.TrackingService"
)

// DirectoryServiceServer is the server API for the directory/query service.
type DirectoryServiceServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	ListPackages(context.Context, *ListPackagesRequest) (*PackageListResponse, error)
	SearchPackages(context.Context, *SearchPackagesRequest) (*PackageListResponse, error)
	CheckStatus(context.Context, *CheckStatusRequest) (*CheckStatusResponse, error)
	ListAllUsers(context.Context, *ListAllUsersRequest) (*ListAllUsersResponse, error)
	ListAllPackages(context.Context, *ListAllPackagesRequest) (*ListAllPackagesResponse, error)
	Describe(context.Context, *DescribeRequest) (*Manifest, error)
}

// TrackingServiceServer is the server API for the tracking state service.
type TrackingServiceServer interface {
	AddPackage(context.Context, *AddPackageRequest) (*AddPackageResponse, error)
	RemovePackage(context.Context, *RemovePackageRequest) (*RemovePackageResponse, error)
	RegisterTracking(context.Context, *RegisterTrackingRequest) (*RegisterTrackingResponse, error)
	UpdateStatus(context.Context, *UpdateStatusRequest) (*UpdateStatusResponse, error)
	Describe(context.Context, *DescribeRequest) (*Manifest, error)
}

// unary adapts a typed method to the handler shape grpc.MethodDesc expects,
// decoding the request document and threading any server interceptor.
func unary[S any, Req any](fullMethod string, call func(S, context.Context, *Req) (any, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		})
	}
}

func method(service, name string) string { return "/" + service + "/" + name }

// directoryServiceDesc wires the directory service the way generated code
// would, minus the generator.
var directoryServiceDesc = grpc.ServiceDesc{
	ServiceName: DirectoryServiceName,
	HandlerType: (*DirectoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unary(method(DirectoryServiceName, "Login"),
			func(s DirectoryServiceServer, ctx context.Context, r *LoginRequest) (any, error) { return s.Login(ctx, r) })},
		{MethodName: "Register", Handler: unary(method(DirectoryServiceName, "Register"),
			func(s DirectoryServiceServer, ctx context.Context, r *RegisterRequest) (any, error) { return s.Register(ctx, r) })},
		{MethodName: "ListPackages", Handler: unary(method(DirectoryServiceName, "ListPackages"),
			func(s DirectoryServiceServer, ctx context.Context, r *ListPackagesRequest) (any, error) {
				return s.ListPackages(ctx, r)
			})},
		{MethodName: "SearchPackages", Handler: unary(method(DirectoryServiceName, "SearchPackages"),
			func(s DirectoryServiceServer, ctx context.Context, r *SearchPackagesRequest) (any, error) {
				return s.SearchPackages(ctx, r)
			})},
		{MethodName: "CheckStatus", Handler: unary(method(DirectoryServiceName, "CheckStatus"),
			func(s DirectoryServiceServer, ctx context.Context, r *CheckStatusRequest) (any, error) {
				return s.CheckStatus(ctx, r)
			})},
		{MethodName: "ListAllUsers", Handler: unary(method(DirectoryServiceName, "ListAllUsers"),
			func(s DirectoryServiceServer, ctx context.Context, r *ListAllUsersRequest) (any, error) {
				return s.ListAllUsers(ctx, r)
			})},
		{MethodName: "ListAllPackages", Handler: unary(method(DirectoryServiceName, "ListAllPackages"),
			func(s DirectoryServiceServer, ctx context.Context, r *ListAllPackagesRequest) (any, error) {
				return s.ListAllPackages(ctx, r)
			})},
		{MethodName: "Describe", Handler: unary(method(DirectoryServiceName, "Describe"),
			func(s DirectoryServiceServer, ctx context.Context, r *DescribeRequest) (any, error) { return s.Describe(ctx, r) })},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "directory/v1",
}

var trackingServiceDesc = grpc.ServiceDesc{
	ServiceName: TrackingServiceName,
	HandlerType: (*TrackingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddPackage", Handler: unary(method(TrackingServiceName, "AddPackage"),
			func(s TrackingServiceServer, ctx context.Context, r *AddPackageRequest) (any, error) { return s.AddPackage(ctx, r) })},
		{MethodName: "RemovePackage", Handler: unary(method(TrackingServiceName, "RemovePackage"),
			func(s TrackingServiceServer, ctx context.Context, r *RemovePackageRequest) (any, error) {
				return s.RemovePackage(ctx, r)
			})},
		{MethodName: "RegisterTracking", Handler: unary(method(TrackingServiceName, "RegisterTracking"),
			func(s TrackingServiceServer, ctx context.Context, r *RegisterTrackingRequest) (any, error) {
				return s.RegisterTracking(ctx, r)
			})},
		{MethodName: "UpdateStatus", Handler: unary(method(TrackingServiceName, "UpdateStatus"),
			func(s TrackingServiceServer, ctx context.Context, r *UpdateStatusRequest) (any, error) {
				return s.UpdateStatus(ctx, r)
			})},
		{MethodName: "Describe", Handler: unary(method(TrackingServiceName, "Describe"),
			func(s TrackingServiceServer, ctx context.Context, r *DescribeRequest) (any, error) { return s.Describe(ctx, r) })},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tracking/v1",
}

func operationNames(desc *grpc.ServiceDesc) []string {
	out := make([]string, 0, len(desc.Methods))
	for _, m := range desc.Methods {
		out = append(out, m.MethodName)
	}
	return out
}
