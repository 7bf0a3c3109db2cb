// seehuhn.de/go/fontdedup - a tool to deduplicate glyphs across font files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package dedup

import (
	"errors"
	"fmt"
)

// ConfigError indicates that the inputs to the engine are invalid.
// Configuration errors are fatal: the run fails before any computation
// begins, and no partial plan is produced.
type ConfigError struct {
	Err error
}

func (err *ConfigError) Error() string {
	return "invalid configuration: " + err.Err.Error()
}

func (err *ConfigError) Unwrap() error {
	return err.Err
}

func configErrorf(format string, a ...interface{}) error {
	return &ConfigError{Err: fmt.Errorf(format, a...)}
}

// ErrUnknownFont indicates that an explicit priority list names a font
// which is not part of the input font list.
var ErrUnknownFont = errors.New("font not in the input list")

func fmtErrUnknownFont(id string) error {
	return fmt.Errorf("%q: %w", id, ErrUnknownFont)
}
