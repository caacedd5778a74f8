package rpc

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// startDirectoryService serves the fixture's directory server on a loopback
// listener and returns its address.
func startDirectoryService(t *testing.T, f *rpcFixture) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	shutdown := serveDirectory(lis, testJWTSecret, f.directory)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	})
	return lis.Addr().String()
}

func startTrackingService(t *testing.T, f *rpcFixture) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	shutdown := serveTracking(lis, testJWTSecret, f.trackSvc)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	})
	return lis.Addr().String()
}

func TestDirectoryClient_RoundTrip(t *testing.T) {
	f := newRPCFixture(t)
	ctx := context.Background()
	f.addPackage(t, ctx, f.client, f.other, "laptop", "fragile")
	addr := startDirectoryService(t, f)

	c, err := NewDirectoryClient(ctx, addr, DefaultCallTimeout)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	// Construction fetched and validated the manifest.
	if got := c.Manifest().Service; got != DirectoryServiceName {
		t.Errorf("manifest service = %q", got)
	}
	if err := c.Healthy(ctx); err != nil {
		t.Errorf("health check: %v", err)
	}

	// Login needs no token; the response token authenticates later calls.
	login, err := c.Login(ctx, "alice", "alice-pass")
	if err != nil {
		t.Fatalf("login over the wire: %v", err)
	}
	if login.UserID != f.client.ID || login.Role != "client" || login.Token == "" {
		t.Fatalf("unexpected login response: %+v", login)
	}

	packages, err := c.ListPackages(ctx, login.Token, f.client.ID)
	if err != nil {
		t.Fatalf("list packages over the wire: %v", err)
	}
	if len(packages) != 1 || packages[0].Name != "laptop" {
		t.Errorf("unexpected packages: %+v", packages)
	}

	// The interceptor rejects the same call without a token.
	_, err = c.ListPackages(ctx, "", f.client.ID)
	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("tokenless list: got %v, want Unauthenticated", err)
	}

	// Admin-only operations are denied for a client token, allowed for admin.
	_, err = c.ListAllUsers(ctx, login.Token)
	if status.Code(err) != codes.PermissionDenied {
		t.Errorf("client listing users: got %v, want PermissionDenied", err)
	}
	adminLogin, err := c.Login(ctx, "admin", "admin-pass")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	users, err := c.ListAllUsers(ctx, adminLogin.Token)
	if err != nil || len(users) != 3 {
		t.Errorf("admin listing users: %d users, err=%v", len(users), err)
	}

	_, err = c.Login(ctx, "alice", "wrong")
	if status.Code(err) != codes.Unauthenticated {
		t.Errorf("bad password over the wire: got %v, want Unauthenticated", err)
	}
}

func TestTrackingClient_RoundTrip(t *testing.T) {
	f := newRPCFixture(t)
	ctx := context.Background()
	dirAddr := startDirectoryService(t, f)
	trkAddr := startTrackingService(t, f)

	dir, err := NewDirectoryClient(ctx, dirAddr, DefaultCallTimeout)
	if err != nil {
		t.Fatalf("connect directory: %v", err)
	}
	defer dir.Close()
	trk, err := NewTrackingClient(ctx, trkAddr, DefaultCallTimeout)
	if err != nil {
		t.Fatalf("connect tracking: %v", err)
	}
	defer trk.Close()

	admin, err := dir.Login(ctx, "admin", "admin-pass")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}

	id, err := trk.AddPackage(ctx, admin.Token, &AddPackageRequest{
		SenderID:        f.client.ID,
		ReceiverID:      f.other.ID,
		Name:            "books",
		SenderCity:      "Lisbon",
		DestinationCity: "Porto",
	})
	if err != nil || id <= 0 {
		t.Fatalf("add package over the wire: id=%d err=%v", id, err)
	}

	if err := trk.RegisterTracking(ctx, admin.Token, id, "Lisbon", "2026-03-01T08:00:00Z"); err != nil {
		t.Fatalf("register tracking over the wire: %v", err)
	}
	err = trk.RegisterTracking(ctx, admin.Token, id, "Porto", "2026-03-02T08:00:00Z")
	if status.Code(err) != codes.AlreadyExists {
		t.Errorf("second registration over the wire: got %v, want AlreadyExists", err)
	}

	if err := trk.RemovePackage(ctx, admin.Token, id); err != nil {
		t.Fatalf("remove over the wire: %v", err)
	}
	err = trk.RemovePackage(ctx, admin.Token, id)
	if status.Code(err) != codes.NotFound {
		t.Errorf("second remove over the wire: got %v, want NotFound", err)
	}
}

func TestClientConstruction_RefusesIncompleteManifest(t *testing.T) {
	f := newRPCFixture(t)
	ctx := context.Background()
	dirAddr := startDirectoryService(t, f)
	trkAddr := startTrackingService(t, f)

	// A manifest missing a required operation fails construction.
	c, err := newClient(dirAddr, DefaultCallTimeout)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()
	_, err = c.fetchManifest(ctx, DirectoryServiceName, []string{"Login", "PurgeEverything"})
	if err == nil || !strings.Contains(err.Error(), "PurgeEverything") {
		t.Fatalf("incomplete manifest accepted: %v", err)
	}

	// Pointing a directory client at the tracking endpoint fails at
	// construction, not on first use.
	if _, err := NewDirectoryClient(ctx, trkAddr, DefaultCallTimeout); err == nil {
		t.Fatal("directory client connected to the wrong service")
	}
}
