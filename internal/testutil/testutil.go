package testutil

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/metadata"

	"packageTrackingManagement/internal/db"
)

// OpenInMemoryDB opens an in-memory SQLite database with the schema applied.
// Cleanup is registered automatically.
func OpenInMemoryDB(t *testing.T, name string) *db.DB {
	t.Helper()
	// Shared-cache memory databases let multiple connections see the same data.
	d, err := db.Open(db.DriverSQLite, "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// GenerateJWTHS256 returns a signed token with the claims the services expect.
func GenerateJWTHS256(t *testing.T, secret string, userID int64, name, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"uid":  userID,
		"name": name,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// CtxWithBearer returns a context containing gRPC metadata Authorization header with the given token.
func CtxWithBearer(ctx context.Context, token string) context.Context {
	md := metadata.Pairs("authorization", "Bearer "+token)
	return metadata.NewIncomingContext(ctx, md)
}
