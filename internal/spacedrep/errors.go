package spacedrep

import "errors"

// ErrInvalidQuality is returned when a review quality rating falls
// outside [0,5]. No state is changed.
var ErrInvalidQuality = errors.New("quality rating must be between 0 and 5")

// ErrWordNotFound is returned when a review is submitted for a word with
// no practice record. Words enter the system through the lesson flow
// before they can be reviewed.
var ErrWordNotFound = errors.New("word has no practice record")
