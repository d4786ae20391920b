package pixelterm

import "errors"

// Sentinel errors returned (wrapped) by backend operations. Match with
// errors.Is.
var (
	// ErrConfiguration indicates an invalid construction-time configuration:
	// nil or zero-sized target, mismatched font cell sizes, a display smaller
	// than one character cell, or a flush callback without a framebuffer.
	ErrConfiguration = errors.New("pixelterm: invalid configuration")

	// ErrDeviceWrite indicates that a pixel write to the draw target failed.
	// The in-progress frame is aborted and the snapshot voided; the next
	// Draw repaints every cell.
	ErrDeviceWrite = errors.New("pixelterm: device write failed")

	// ErrFlush indicates that the flush callback reported a device failure.
	// The in-progress frame is aborted and the snapshot voided; the next
	// Draw repaints every cell.
	ErrFlush = errors.New("pixelterm: flush failed")
)
