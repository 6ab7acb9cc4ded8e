package domain

import "errors"

var (
	// ErrUsernameTaken signals a registration against an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrUserNotFound signals a lookup or reset against an unknown user.
	ErrUserNotFound = errors.New("user not found")
	// ErrWardNotFound signals a missing ward record.
	ErrWardNotFound = errors.New("ward not found")
	// ErrInvalidCredentials signals a failed username/password check. It
	// deliberately covers both "no such user" and "wrong password".
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenInvalid signals a token that failed verification for any
	// reason: bad signature, expired, malformed.
	ErrTokenInvalid = errors.New("invalid or expired token")
	// ErrInvalidRole signals a directory call with an unrecognized role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrOldPasswordRequired signals a password reset by a non-SUPER caller
	// that omitted the old password.
	ErrOldPasswordRequired = errors.New("old password required")
	// ErrOldPasswordMismatch signals a password reset whose old password did
	// not verify against the stored hash.
	ErrOldPasswordMismatch = errors.New("old password does not match")
	// ErrImageUpload signals that the image store did not return a usable path.
	ErrImageUpload = errors.New("failed to upload image")
	// ErrImageDelete signals that the image store reported a failed deletion.
	ErrImageDelete = errors.New("failed to delete image")
)
