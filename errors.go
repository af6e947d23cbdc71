// SPDX-License-Identifier: EPL-2.0

package wavtrim

import "errors"

var (
	// ErrUnsupportedFormat indicates no decoder is registered for the file extension
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrSilent indicates an input without any sample above the threshold
	// while Options.SkipSilent is set
	ErrSilent = errors.New("input is entirely silent")
)
