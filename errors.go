package wad

import "errors"

// Package-specific error variables that can be used with errors.Is() for error handling.
var (
	// ErrInvalidFile is returned when the file is too short to hold the 12-byte WAD header.
	// The magic bytes themselves are not validated.
	ErrInvalidFile = errors.New("invalid file, wad header not found")

	// ErrTruncated is returned when the descriptor list is shorter than the header claims.
	ErrTruncated = errors.New("wad descriptor list truncated")

	// ErrUnbalancedMarkers is returned when a namespace _END has no matching _START, or when
	// a _START is still open at the end of the descriptor list.
	ErrUnbalancedMarkers = errors.New("unbalanced namespace markers in wad descriptor list")

	// ErrShortMapMarker is returned when a map marker has fewer than 10 descriptors after it.
	ErrShortMapMarker = errors.New("map marker has fewer than 10 trailing descriptors")

	// ErrNotDirectory is returned when a directory-only operation targets a non-directory path.
	ErrNotDirectory = errors.New("not a directory")

	// ErrNotContent is returned when a content-only operation targets a path that isn't a lump.
	ErrNotContent = errors.New("not a content lump")

	// ErrExists is returned when a create operation's target already exists.
	ErrExists = errors.New("path already exists")

	// ErrInvalidPath is returned when a path fails the basic shape checks of §4.4/§4.6/§4.7.
	ErrInvalidPath = errors.New("invalid path")

	// ErrParentMissing is returned when the parent directory of a create target doesn't exist.
	ErrParentMissing = errors.New("parent directory does not exist")

	// ErrParentIsMapMarker is returned when the parent directory of a create target is a map marker.
	ErrParentIsMapMarker = errors.New("parent directory is a map marker, cannot create children inside it")

	// ErrReservedName is returned when a file basename collides with a reserved marker shape.
	ErrReservedName = errors.New("reserved name, looks like a namespace or map marker")

	// ErrWriteOnce is not returned as an error value: when WriteToFile targets a lump that has
	// already been populated it returns 0 and records this sentinel for LastError.
	ErrWriteOnce = errors.New("lump already written, write-once semantics apply")
)
