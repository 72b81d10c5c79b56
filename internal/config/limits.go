package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	MaxFolderNameLength = 250

	// MaxFileNameLength is the maximum length for file names.
	MaxFileNameLength = 250

	// MaxEmailLength follows the practical limit of an address in SMTP paths.
	MaxEmailLength = 254

	// MaxPersonNameLength bounds first and last names on a profile.
	MaxPersonNameLength = 150

	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 8

	// DefaultMaxUploadBytes caps a single upload (32 MB).
	DefaultMaxUploadBytes = 32 << 20
)
