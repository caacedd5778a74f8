package repository

import (
	"context"

	"packageTrackingManagement/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username, passwordHash, email, role string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

// PackageRepositoryI defines operations on Package entities.
type PackageRepositoryI interface {
	Create(ctx context.Context, p *models.Package) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Package, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Package, error)
	Search(ctx context.Context, userID int64, term string) ([]models.Package, error)
	ListAll(ctx context.Context) ([]models.Package, error)
}

// TrackingRepositoryI defines operations on the tracking state of packages.
type TrackingRepositoryI interface {
	RegisterInitial(ctx context.Context, packageID int64, city, timestamp string) error
	Append(ctx context.Context, packageID int64, city, timestamp string) error
	History(ctx context.Context, packageID int64) ([]models.TrackingCheckpoint, error)
}
