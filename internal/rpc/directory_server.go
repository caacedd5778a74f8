package rpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"packageTrackingManagement/internal/auth"
	"packageTrackingManagement/internal/hash"
	"packageTrackingManagement/models"
	"packageTrackingManagement/repository"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// tokenTTL bounds how long an issued service token (and therefore a web
// session) stays valid.
const tokenTTL = 12 * time.Hour

// DirectoryServer implements directory.v1.DirectoryService.
type DirectoryServer struct {
	Users     repository.UserRepositoryI
	Packages  repository.PackageRepositoryI
	Tracking  repository.TrackingRepositoryI
	JWTSecret string
	Logger    *slog.Logger
}

func (s *DirectoryServer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Login verifies credentials and returns the user's identity plus a signed
// token. Bad credentials and unknown usernames collapse to the same
// Unauthenticated fault.
func (s *DirectoryServer) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if req == nil || req.Username == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "username and password are required")
	}
	u, err := s.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, status.Error(codes.Unauthenticated, "invalid credentials")
		}
		return nil, internalFault(s.logger(), "login", err)
	}
	if !hash.Verify(u.PasswordHash, req.Password) {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}
	token, err := auth.IssueToken(s.JWTSecret, u.ID, u.Username, u.Role, tokenTTL)
	if err != nil {
		return nil, internalFault(s.logger(), "login", err)
	}
	return &LoginResponse{UserID: u.ID, Username: u.Username, Role: u.Role, Token: token}, nil
}

// Register creates a new account with the default "client" role.
func (s *DirectoryServer) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	if req == nil || req.Username == "" || req.Password == "" || req.Email == "" {
		return nil, status.Error(codes.InvalidArgument, "username, password, and email are required")
	}
	digest, err := hash.Hash(req.Password)
	if err != nil {
		return nil, internalFault(s.logger(), "register", err)
	}
	if _, err := s.Users.Create(ctx, req.Username, digest, req.Email, models.RoleClient); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, status.Error(codes.AlreadyExists, "username or email already exists")
		}
		return nil, internalFault(s.logger(), "register", err)
	}
	return &RegisterResponse{Success: true}, nil
}

// ListPackages returns packages where the user is sender or receiver, newest
// first. Clients may only list their own; admins may list anyone's.
func (s *DirectoryServer) ListPackages(ctx context.Context, req *ListPackagesRequest) (*PackageListResponse, error) {
	if req == nil || req.UserID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}
	if _, err := auth.RequireSelfOrAdmin(ctx, req.UserID); err != nil {
		return nil, err
	}
	list, err := s.Packages.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, internalFault(s.logger(), "list packages", err)
	}
	return &PackageListResponse{Packages: toPackageInfos(list)}, nil
}

// SearchPackages applies the membership filter plus a case-insensitive
// substring match against name or description. An empty term is allowed and
// behaves like ListPackages.
func (s *DirectoryServer) SearchPackages(ctx context.Context, req *SearchPackagesRequest) (*PackageListResponse, error) {
	if req == nil || req.UserID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}
	if _, err := auth.RequireSelfOrAdmin(ctx, req.UserID); err != nil {
		return nil, err
	}
	list, err := s.Packages.Search(ctx, req.UserID, req.Term)
	if err != nil {
		return nil, internalFault(s.logger(), "search packages", err)
	}
	return &PackageListResponse{Packages: toPackageInfos(list)}, nil
}

// CheckStatus returns a package's checkpoint history, timestamp ascending.
// An untracked or unknown package yields an empty history, not a fault.
func (s *DirectoryServer) CheckStatus(ctx context.Context, req *CheckStatusRequest) (*CheckStatusResponse, error) {
	if req == nil || req.PackageID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "package_id is required")
	}
	if _, err := auth.RequirePrincipal(ctx); err != nil {
		return nil, err
	}
	history, err := s.Tracking.History(ctx, req.PackageID)
	if err != nil {
		return nil, internalFault(s.logger(), "check status", err)
	}
	out := make([]TrackingStatus, 0, len(history))
	for _, c := range history {
		out = append(out, TrackingStatus{City: c.City, Timestamp: c.Timestamp})
	}
	return &CheckStatusResponse{History: out}, nil
}

// ListAllUsers returns every user ordered by username ascending. Admin-only.
func (s *DirectoryServer) ListAllUsers(ctx context.Context, req *ListAllUsersRequest) (*ListAllUsersResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	users, err := s.Users.ListAll(ctx)
	if err != nil {
		return nil, internalFault(s.logger(), "list all users", err)
	}
	out := make([]UserSelectionInfo, 0, len(users))
	for _, u := range users {
		out = append(out, UserSelectionInfo{ID: u.ID, Username: u.Username})
	}
	return &ListAllUsersResponse{Users: out}, nil
}

// ListAllPackages returns every package joined with sender/receiver usernames,
// newest first. Admin-only.
func (s *DirectoryServer) ListAllPackages(ctx context.Context, req *ListAllPackagesRequest) (*ListAllPackagesResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	list, err := s.Packages.ListAll(ctx)
	if err != nil {
		return nil, internalFault(s.logger(), "list all packages", err)
	}
	out := make([]PackageInfoAdmin, 0, len(list))
	for _, p := range list {
		out = append(out, PackageInfoAdmin{
			PackageInfo:      toPackageInfo(&p),
			SenderUsername:   p.SenderUsername,
			ReceiverUsername: p.ReceiverUsername,
			CreationDate:     p.CreatedAt,
		})
	}
	return &ListAllPackagesResponse{Packages: out}, nil
}

// Describe returns the service's operation manifest.
func (s *DirectoryServer) Describe(ctx context.Context, _ *DescribeRequest) (*Manifest, error) {
	return &Manifest{
		Service:    DirectoryServiceName,
		Version:    "v1",
		Operations: operationNames(&directoryServiceDesc),
	}, nil
}

func toPackageInfo(p *models.Package) PackageInfo {
	return PackageInfo{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		SenderCity:      p.SenderCity,
		DestinationCity: p.DestinationCity,
		IsTracked:       p.IsTracked,
	}
}

func toPackageInfos(list []models.Package) []PackageInfo {
	out := make([]PackageInfo, 0, len(list))
	for i := range list {
		out = append(out, toPackageInfo(&list[i]))
	}
	return out
}
