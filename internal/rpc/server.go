package rpc

import (
	"context"
	"net"

	"packageTrackingManagement/internal/auth"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Methods that bypass authentication on every service.
var commonUnauthenticated = []string{
	"/grpc.health.v1.Health/Check",
	"/grpc.health.v1.Health/Watch",
}

// StartDirectory serves the directory service (plus the standard health
// service) on addr and returns a graceful-shutdown function.
func StartDirectory(addr, jwtSecret string, srv DirectoryServiceServer) (func(context.Context) error, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return serveDirectory(lis, jwtSecret, srv), nil
}

// StartTracking serves the tracking service (plus the standard health
// service) on addr and returns a graceful-shutdown function.
func StartTracking(addr, jwtSecret string, srv TrackingServiceServer) (func(context.Context) error, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return serveTracking(lis, jwtSecret, srv), nil
}

func serveDirectory(lis net.Listener, jwtSecret string, srv DirectoryServiceServer) func(context.Context) error {
	allow := append([]string{
		method(DirectoryServiceName, "Login"),
		method(DirectoryServiceName, "Register"),
		method(DirectoryServiceName, "Describe"),
	}, commonUnauthenticated...)
	return serve(lis, jwtSecret, allow, func(g *grpc.Server) {
		g.RegisterService(&directoryServiceDesc, srv)
	})
}

func serveTracking(lis net.Listener, jwtSecret string, srv TrackingServiceServer) func(context.Context) error {
	allow := append([]string{
		method(TrackingServiceName, "Describe"),
	}, commonUnauthenticated...)
	return serve(lis, jwtSecret, allow, func(g *grpc.Server) {
		g.RegisterService(&trackingServiceDesc, srv)
	})
}

func serve(lis net.Listener, jwtSecret string, allowUnauthenticated []string, register func(*grpc.Server)) func(context.Context) error {
	g := grpc.NewServer(grpc.UnaryInterceptor(auth.NewUnaryAuthInterceptor(jwtSecret, allowUnauthenticated...)))
	register(g)

	// Liveness: the fixed-OK analog for external health checks.
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(g, hs)

	go func() { _ = g.Serve(lis) }()

	return func(ctx context.Context) error {
		done := make(chan struct{})
		go func() { g.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			g.Stop()
			return ctx.Err()
		}
	}
}
