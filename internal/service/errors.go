package service

import "errors"

var (
	// ErrBikeNotFound is returned when an operation references a bike id with
	// no matching registered bike.
	ErrBikeNotFound = errors.New("bike not found")

	// ErrBikeUnavailable is returned when a rent is requested on a bike that
	// is currently rented out.
	ErrBikeUnavailable = errors.New("bike unavailable")

	// ErrUserNotFound is returned when a lookup, authentication or rent
	// references an email with no matching user.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserDuplicate is returned when registration is attempted with an
	// email already in use.
	ErrUserDuplicate = errors.New("user duplicate")

	// ErrUserNotExistent is returned when removal is attempted on an email
	// with no matching user.
	ErrUserNotExistent = errors.New("user does not exist")

	// ErrUserPassword is returned when the password fails verification
	// against the stored digest.
	ErrUserPassword = errors.New("user password mismatch")

	// ErrNoActiveRent is returned when a return references a bike/user pair
	// with no open rent.
	ErrNoActiveRent = errors.New("no active rent for bike and user")

	// ErrInvalidBikeID is returned when a bike ID is empty.
	ErrInvalidBikeID = errors.New("invalid bike id")

	// ErrInvalidEmail is returned when an email is empty.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidPassword is returned when a password is empty.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidLocation is returned when location coordinates are out of range.
	ErrInvalidLocation = errors.New("invalid location")
)
