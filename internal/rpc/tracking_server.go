package rpc

import (
	"context"
	"errors"
	"log/slog"

	"packageTrackingManagement/internal/auth"
	"packageTrackingManagement/models"
	"packageTrackingManagement/repository"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// TrackingServer implements tracking.v1.TrackingService. Every operation
// except Describe requires an admin principal.
type TrackingServer struct {
	Users    repository.UserRepositoryI
	Packages repository.PackageRepositoryI
	Tracking repository.TrackingRepositoryI
	Logger   *slog.Logger
}

func (s *TrackingServer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// AddPackage creates a new package and returns its id.
func (s *TrackingServer) AddPackage(ctx context.Context, req *AddPackageRequest) (*AddPackageResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	if req == nil || req.SenderID <= 0 || req.ReceiverID <= 0 || req.Name == "" || req.SenderCity == "" || req.DestinationCity == "" {
		return nil, status.Error(codes.InvalidArgument,
			"sender_id, receiver_id, name, sender_city, and destination_city are required")
	}
	p := &models.Package{
		SenderID:        req.SenderID,
		ReceiverID:      req.ReceiverID,
		Name:            req.Name,
		Description:     req.Description,
		SenderCity:      req.SenderCity,
		DestinationCity: req.DestinationCity,
	}
	id, err := s.Packages.Create(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "sender or receiver does not exist")
		}
		return nil, internalFault(s.logger(), "add package", err)
	}
	return &AddPackageResponse{PackageID: id}, nil
}

// RemovePackage deletes a package. Removing an id that is already gone fails
// with a NotFound fault.
func (s *TrackingServer) RemovePackage(ctx context.Context, req *RemovePackageRequest) (*RemovePackageResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	if req == nil || req.PackageID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "a valid package_id is required")
	}
	removed, err := s.Packages.Delete(ctx, req.PackageID)
	if err != nil {
		return nil, internalFault(s.logger(), "remove package", err)
	}
	if !removed {
		return nil, status.Errorf(codes.NotFound, "package %d does not exist", req.PackageID)
	}
	return &RemovePackageResponse{Success: true}, nil
}

// RegisterTracking transitions a package from untracked to tracked and
// records its first checkpoint. Registering an already-tracked package is
// rejected and appends nothing.
func (s *TrackingServer) RegisterTracking(ctx context.Context, req *RegisterTrackingRequest) (*RegisterTrackingResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	if req == nil || req.PackageID <= 0 || req.City == "" || req.Timestamp == "" {
		return nil, status.Error(codes.InvalidArgument, "package_id, city, and timestamp are required")
	}
	ts, ok := parseTimestamp(req.Timestamp)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "invalid timestamp %q", req.Timestamp)
	}
	if err := s.Tracking.RegisterInitial(ctx, req.PackageID, req.City, ts); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, status.Errorf(codes.NotFound, "package %d does not exist", req.PackageID)
		case errors.Is(err, repository.ErrAlreadyTracked):
			return nil, status.Errorf(codes.AlreadyExists, "package %d is already tracked", req.PackageID)
		default:
			return nil, internalFault(s.logger(), "register tracking", err)
		}
	}
	s.logger().Info("tracking registered", "package_id", req.PackageID, "city", req.City)
	return &RegisterTrackingResponse{Success: true}, nil
}

// UpdateStatus appends one checkpoint to a tracked package.
func (s *TrackingServer) UpdateStatus(ctx context.Context, req *UpdateStatusRequest) (*UpdateStatusResponse, error) {
	if _, err := auth.RequireAdmin(ctx, s.Users); err != nil {
		return nil, err
	}
	if req == nil || req.PackageID <= 0 || req.City == "" || req.Timestamp == "" {
		return nil, status.Error(codes.InvalidArgument, "package_id, city, and timestamp are required")
	}
	ts, ok := parseTimestamp(req.Timestamp)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "invalid timestamp %q", req.Timestamp)
	}
	if err := s.Tracking.Append(ctx, req.PackageID, req.City, ts); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, status.Errorf(codes.NotFound, "package %d does not exist", req.PackageID)
		case errors.Is(err, repository.ErrNotTracked):
			return nil, status.Errorf(codes.FailedPrecondition, "package %d is not tracked", req.PackageID)
		default:
			return nil, internalFault(s.logger(), "update status", err)
		}
	}
	return &UpdateStatusResponse{Success: true}, nil
}

// Describe returns the service's operation manifest.
func (s *TrackingServer) Describe(ctx context.Context, _ *DescribeRequest) (*Manifest, error) {
	return &Manifest{
		Service:    TrackingServiceName,
		Version:    "v1",
		Operations: operationNames(&trackingServiceDesc),
	}, nil
}
