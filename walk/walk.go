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

// Package walk enumerates the regular files below a root path.
//
// The enumeration is lazy: a directory is only read when the consumer of
// the sequence reaches it.  Entries of a directory are visited in
// lexicographic order of their names, and subdirectories are descended
// into at the position of their name, so that repeated walks over an
// unchanged filesystem produce the same sequence.
package walk

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrInvalidRoot is returned by [Files] if the root is neither a regular
// file nor a directory.
var ErrInvalidRoot = errors.New("not a file or directory")

// Files returns the regular files below root.
//
// If root is a regular file, the sequence consists of root only.  If root
// is a directory, the sequence contains the regular files in this
// directory and, if recursive is set, the regular files in all
// subdirectories.  Symbolic links are included if they point to a regular
// file; links to directories are not followed.  Directories which cannot
// be read are skipped.
//
// The root is checked when Files is called; the returned error wraps
// [ErrInvalidRoot] if the root cannot be used.
func Files(fsys afero.Fs, root string, recursive bool) (iter.Seq[string], error) {
	if root == "" {
		return nil, fmt.Errorf("empty path: %w", ErrInvalidRoot)
	}
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}

	switch {
	case info.Mode().IsRegular():
		return func(yield func(string) bool) {
			yield(root)
		}, nil
	case info.IsDir():
		return func(yield func(string) bool) {
			walkDir(fsys, root, recursive, yield)
		}, nil
	default:
		return nil, fmt.Errorf("%s: %w", root, ErrInvalidRoot)
	}
}

// walkDir visits the entries of dir.  It returns false if the consumer
// has stopped the iteration.
func walkDir(fsys afero.Fs, dir string, recursive bool, yield func(string) bool) bool {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return true
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		mode := entry.Mode()

		switch {
		case mode.IsRegular():
			if !yield(path) {
				return false
			}
		case mode.IsDir():
			if recursive && !walkDir(fsys, path, recursive, yield) {
				return false
			}
		case mode&fs.ModeSymlink != 0:
			target, err := fsys.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				continue
			}
			if !yield(path) {
				return false
			}
		}
	}
	return true
}
