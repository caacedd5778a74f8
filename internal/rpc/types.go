package rpc

// Wire types shared by servers and clients. Field names follow the JSON
// document layout; zero values mean "absent" for optional fields.

// LoginRequest authenticates a user by username and password.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated identity and a signed token the
// caller presents as Bearer metadata on subsequent operations.
type LoginResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type RegisterResponse struct {
	Success bool `json:"success"`
}

// PackageInfo is the client-facing package view.
type PackageInfo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	SenderCity      string `json:"sender_city"`
	DestinationCity string `json:"destination_city"`
	IsTracked       bool   `json:"is_tracked"`
}

// PackageInfoAdmin extends PackageInfo with ownership and creation metadata
// for the admin listing.
type PackageInfoAdmin struct {
	PackageInfo
	SenderUsername   string `json:"sender_username"`
	ReceiverUsername string `json:"receiver_username"`
	CreationDate     string `json:"creation_date"`
}

type ListPackagesRequest struct {
	UserID int64 `json:"user_id"`
}

type SearchPackagesRequest struct {
	UserID int64  `json:"user_id"`
	Term   string `json:"term"`
}

type PackageListResponse struct {
	Packages []PackageInfo `json:"packages"`
}

type CheckStatusRequest struct {
	PackageID int64 `json:"package_id"`
}

// TrackingStatus is one checkpoint in a package's history.
type TrackingStatus struct {
	City      string `json:"city"`
	Timestamp string `json:"timestamp"`
}

type CheckStatusResponse struct {
	History []TrackingStatus `json:"history"`
}

type ListAllUsersRequest struct{}

// UserSelectionInfo is the minimal user view for admin selection lists.
type UserSelectionInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type ListAllUsersResponse struct {
	Users []UserSelectionInfo `json:"users"`
}

type ListAllPackagesRequest struct{}

type ListAllPackagesResponse struct {
	Packages []PackageInfoAdmin `json:"packages"`
}

type AddPackageRequest struct {
	SenderID        int64  `json:"sender_id"`
	ReceiverID      int64  `json:"receiver_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	SenderCity      string `json:"sender_city"`
	DestinationCity string `json:"destination_city"`
}

type AddPackageResponse struct {
	PackageID int64 `json:"package_id"`
}

type RemovePackageRequest struct {
	PackageID int64 `json:"package_id"`
}

type RemovePackageResponse struct {
	Success bool `json:"success"`
}

type RegisterTrackingRequest struct {
	PackageID int64  `json:"package_id"`
	City      string `json:"city"`
	Timestamp string `json:"timestamp"`
}

type RegisterTrackingResponse struct {
	Success bool `json:"success"`
}

type UpdateStatusRequest struct {
	PackageID int64  `json:"package_id"`
	City      string `json:"city"`
	Timestamp string `json:"timestamp"`
}

type UpdateStatusResponse struct {
	Success bool `json:"success"`
}

type DescribeRequest struct{}

// Manifest is the machine-readable interface description returned by
// Describe. Clients fetch it at startup and refuse to use a service that does
// not list the operations they need.
type Manifest struct {
	Service    string   `json:"service"`
	Version    string   `json:"version"`
	Operations []string `json:"operations"`
}
