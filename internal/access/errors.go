package access

import "github.com/pkg/errors"

var (
	// ErrDBNil is returned when the service was constructed without a
	// database handle.
	ErrDBNil = errors.New("gorm.DB is nil")

	// ErrUserIDEmpty is returned when an operation is called without a
	// user id.
	ErrUserIDEmpty = errors.New("user id is empty")

	// ErrPermissionCodeEmpty is returned when a check is called without a
	// permission code.
	ErrPermissionCodeEmpty = errors.New("permission code is empty")

	// ErrAlreadyBootstrapped is returned by BootstrapFirstUser when access
	// rules already exist, meaning initial setup has been completed.
	ErrAlreadyBootstrapped = errors.New("access rules already exist, bootstrap refused")
)
