// seehuhn.de/go/fontfind - locate and classify font files
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

package fonttest

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"
)

// ErrTooManyOpenFiles is returned by [LimitFS] when the limit is reached.
var ErrTooManyOpenFiles = errors.New("too many open files")

// LimitFS wraps a filesystem and allows at most Max files to be open at
// the same time, like a process with a low descriptor limit.
type LimitFS struct {
	afero.Fs
	Max int

	open int
}

// Open opens the named file for reading.
func (l *LimitFS) Open(name string) (afero.File, error) {
	if l.open >= l.Max {
		return nil, &fs.PathError{Op: "open", Path: name, Err: ErrTooManyOpenFiles}
	}
	f, err := l.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	l.open++
	return &limitFile{File: f, fs: l}, nil
}

// InUse returns the number of files which are currently open.
func (l *LimitFS) InUse() int {
	return l.open
}

type limitFile struct {
	afero.File
	fs     *LimitFS
	closed bool
}

func (f *limitFile) Close() error {
	if !f.closed {
		f.closed = true
		f.fs.open--
	}
	return f.File.Close()
}
