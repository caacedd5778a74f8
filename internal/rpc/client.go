package rpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

// DefaultCallTimeout is the fixed overall timeout applied to every call when
// the caller does not configure one at client construction.
const DefaultCallTimeout = 10 * time.Second

// client is the transport shared by both typed clients: one connection, one
// fixed per-call timeout set at construction.
type client struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

func newClient(target string, timeout time.Duration) (*client, error) {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &client{conn: conn, timeout: timeout}, nil
}

// invoke performs one unary call with the JSON content subtype, attaching the
// caller's bearer token when present.
func (c *client) invoke(ctx context.Context, fullMethod, token string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	}
	return c.conn.Invoke(ctx, fullMethod, in, out, grpc.CallContentSubtype(CodecName))
}

// fetchManifest retrieves the service's interface description and verifies it
// lists every operation the caller depends on.
func (c *client) fetchManifest(ctx context.Context, service string, required []string) (*Manifest, error) {
	var m Manifest
	if err := c.invoke(ctx, method(service, "Describe"), "", &DescribeRequest{}, &m); err != nil {
		return nil, fmt.Errorf("fetch service description for %s: %w", service, err)
	}
	ops := make(map[string]struct{}, len(m.Operations))
	for _, op := range m.Operations {
		ops[op] = struct{}{}
	}
	for _, op := range required {
		if _, ok := ops[op]; !ok {
			return nil, fmt.Errorf("service %s does not expose operation %s", service, op)
		}
	}
	return &m, nil
}

// Healthy performs a liveness check against the standard health service.
func (c *client) Healthy(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return err
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("health status %s", resp.GetStatus())
	}
	return nil
}

func (c *client) Close() error { return c.conn.Close() }

// DirectoryClient is the typed caller-side view of the directory service.
type DirectoryClient struct {
	*client
	manifest *Manifest
}

// NewDirectoryClient connects to the directory service and fetches its
// interface description. Construction fails when the service cannot be
// reached or does not describe the expected operations.
func NewDirectoryClient(ctx context.Context, target string, timeout time.Duration) (*DirectoryClient, error) {
	c, err := newClient(target, timeout)
	if err != nil {
		return nil, err
	}
	m, err := c.fetchManifest(ctx, DirectoryServiceName, []string{
		"Login", "Register", "ListPackages", "SearchPackages", "CheckStatus", "ListAllUsers", "ListAllPackages",
	})
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return &DirectoryClient{client: c, manifest: m}, nil
}

// Manifest returns the interface description fetched at construction.
func (c *DirectoryClient) Manifest() *Manifest { return c.manifest }

func (c *DirectoryClient) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.invoke(ctx, method(DirectoryServiceName, "Login"), "", &LoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *DirectoryClient) Register(ctx context.Context, username, password, email string) error {
	var out RegisterResponse
	return c.invoke(ctx, method(DirectoryServiceName, "Register"), "", &RegisterRequest{Username: username, Password: password, Email: email}, &out)
}

func (c *DirectoryClient) ListPackages(ctx context.Context, token string, userID int64) ([]PackageInfo, error) {
	var out PackageListResponse
	if err := c.invoke(ctx, method(DirectoryServiceName, "ListPackages"), token, &ListPackagesRequest{UserID: userID}, &out); err != nil {
		return nil, err
	}
	return out.Packages, nil
}

func (c *DirectoryClient) SearchPackages(ctx context.Context, token string, userID int64, term string) ([]PackageInfo, error) {
	var out PackageListResponse
	if err := c.invoke(ctx, method(DirectoryServiceName, "SearchPackages"), token, &SearchPackagesRequest{UserID: userID, Term: term}, &out); err != nil {
		return nil, err
	}
	return out.Packages, nil
}

func (c *DirectoryClient) CheckStatus(ctx context.Context, token string, packageID int64) ([]TrackingStatus, error) {
	var out CheckStatusResponse
	if err := c.invoke(ctx, method(DirectoryServiceName, "CheckStatus"), token, &CheckStatusRequest{PackageID: packageID}, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

func (c *DirectoryClient) ListAllUsers(ctx context.Context, token string) ([]UserSelectionInfo, error) {
	var out ListAllUsersResponse
	if err := c.invoke(ctx, method(DirectoryServiceName, "ListAllUsers"), token, &ListAllUsersRequest{}, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *DirectoryClient) ListAllPackages(ctx context.Context, token string) ([]PackageInfoAdmin, error) {
	var out ListAllPackagesResponse
	if err := c.invoke(ctx, method(DirectoryServiceName, "ListAllPackages"), token, &ListAllPackagesRequest{}, &out); err != nil {
		return nil, err
	}
	return out.Packages, nil
}

// TrackingClient is the typed caller-side view of the tracking service.
type TrackingClient struct {
	*client
	manifest *Manifest
}

// NewTrackingClient connects to the tracking service and fetches its
// interface description.
func NewTrackingClient(ctx context.Context, target string, timeout time.Duration) (*TrackingClient, error) {
	c, err := newClient(target, timeout)
	if err != nil {
		return nil, err
	}
	m, err := c.fetchManifest(ctx, TrackingServiceName, []string{
		"AddPackage", "RemovePackage", "RegisterTracking", "UpdateStatus",
	})
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return &TrackingClient{client: c, manifest: m}, nil
}

// Manifest returns the interface description fetched at construction.
func (c *TrackingClient) Manifest() *Manifest { return c.manifest }

func (c *TrackingClient) AddPackage(ctx context.Context, token string, req *AddPackageRequest) (int64, error) {
	var out AddPackageResponse
	if err := c.invoke(ctx, method(TrackingServiceName, "AddPackage"), token, req, &out); err != nil {
		return 0, err
	}
	return out.PackageID, nil
}

func (c *TrackingClient) RemovePackage(ctx context.Context, token string, packageID int64) error {
	var out RemovePackageResponse
	return c.invoke(ctx, method(TrackingServiceName, "RemovePackage"), token, &RemovePackageRequest{PackageID: packageID}, &out)
}

func (c *TrackingClient) RegisterTracking(ctx context.Context, token string, packageID int64, city, timestamp string) error {
	var out RegisterTrackingResponse
	return c.invoke(ctx, method(TrackingServiceName, "RegisterTracking"), token,
		&RegisterTrackingRequest{PackageID: packageID, City: city, Timestamp: timestamp}, &out)
}

func (c *TrackingClient) UpdateStatus(ctx context.Context, token string, packageID int64, city, timestamp string) error {
	var out UpdateStatusResponse
	return c.invoke(ctx, method(TrackingServiceName, "UpdateStatus"), token,
		&UpdateStatusRequest{PackageID: packageID, City: city, Timestamp: timestamp}, &out)
}
