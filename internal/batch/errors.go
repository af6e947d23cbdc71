// SPDX-License-Identifier: EPL-2.0

package batch

import "errors"

var (
	// ErrFilesFailed is returned by Report.Err when at least one file failed
	ErrFilesFailed = errors.New("batch: some files failed")

	// ErrOutputCollision indicates an input whose output path was already
	// written by another input in the same run
	ErrOutputCollision = errors.New("batch: output path already written in this run")
)
