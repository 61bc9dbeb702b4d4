package kernel

import (
	"fmt"
	"strings"

	"returns/internal/pkg/errs"
)

const (
	trackNumberMinLen = 1
	trackNumberMaxLen = 64
)

// TrackNumber is a value object for carrier tracking codes: the reverse
// shipment a customer sends back, or the exchange parcel shipped out.
//
// A track number is trimmed, upper-cased, between 1 and 64 characters, and
// may contain only latin letters, digits and dashes. The zero value is
// invalid; use NewTrackNumber.
type TrackNumber struct {
	value string
}

// NewTrackNumber validates and creates a TrackNumber from raw input.
func NewTrackNumber(raw string) (TrackNumber, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if len(value) < trackNumberMinLen {
		return TrackNumber{}, errs.NewValueIsRequiredError("trackNumber")
	}
	if len(value) > trackNumberMaxLen {
		return TrackNumber{}, errs.NewValueIsOutOfRangeError(
			"trackNumber", len(value), trackNumberMinLen, trackNumberMaxLen)
	}

	for _, r := range value {
		if !isTrackNumberRune(r) {
			return TrackNumber{}, errs.NewValueIsInvalidErrorWithCause(
				"trackNumber", fmt.Errorf("character %q is not allowed", r))
		}
	}

	return TrackNumber{value: value}, nil
}

func isTrackNumberRune(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-':
		return true
	default:
		return false
	}
}

// String returns the normalized track number.
func (t TrackNumber) String() string {
	return t.value
}

// IsEqual reports whether two track numbers are the same after normalization.
func (t TrackNumber) IsEqual(other TrackNumber) bool {
	return t.value == other.value
}

// Validate returns an error for the zero value, which can only result from
// bypassing NewTrackNumber.
func (t TrackNumber) Validate() error {
	if t.value == "" {
		return errs.NewValueIsRequiredError("TrackNumber must be created via NewTrackNumber")
	}
	return nil
}
