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

package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"seehuhn.de/go/fontfind"
)

// entry is one line of output.
type entry struct {
	Path   string
	Class  fontfind.Class
	Family string
	Style  string
}

type sortOrder int

const (
	byPath sortOrder = iota
	byFamily
)

func parseOrder(s string) (sortOrder, error) {
	switch strings.ToLower(s) {
	case "", "path":
		return byPath, nil
	case "family":
		return byFamily, nil
	default:
		return 0, fmt.Errorf("invalid sort order %q", s)
	}
}

// sortEntries sorts the entries in place.  Paths are compared
// bytewise, family names using the collation rules of the user's
// language.  The sort is stable, so fonts of the same family stay in
// path order.
func sortEntries(entries []entry, order sortOrder) {
	switch order {
	case byPath:
		slices.SortStableFunc(entries, func(a, b entry) int {
			return strings.Compare(a.Path, b.Path)
		})
	case byFamily:
		c := collate.New(userLanguage(), collate.IgnoreCase)
		slices.SortStableFunc(entries, func(a, b entry) int {
			if cmp := c.CompareString(a.Family, b.Family); cmp != 0 {
				return cmp
			}
			return strings.Compare(a.Path, b.Path)
		})
	}
}

// userLanguage derives the collation language from the locale
// environment variables.
func userLanguage() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_COLLATE", "LANG"} {
		val := os.Getenv(key)
		if val == "" {
			continue
		}
		val, _, _ = strings.Cut(val, ".")
		tag, err := language.Parse(strings.ReplaceAll(val, "_", "-"))
		if err == nil {
			return tag
		}
	}
	return language.Und
}

// writeEntries prints the entries.  If w is a terminal, the output is
// aligned in columns with a header line, otherwise the fields are
// separated by tabs.
func writeEntries(w io.Writer, entries []entry, withNames bool) error {
	out := w
	var tw *tabwriter.Writer
	if isTerminal(w) {
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		out = tw
		header := "PATH\tKIND\tOUTLINE\tVARIATION"
		if withNames {
			header += "\tFAMILY\tSTYLE"
		}
		fmt.Fprintln(out, header)
	}

	for _, e := range entries {
		variation := "static"
		if e.Class.Variable {
			variation = "variable"
		}
		fields := []string{e.Path, e.Class.Kind.String(), e.Class.Outline.String(), variation}
		if withNames {
			fields = append(fields, e.Family, e.Style)
		}
		_, err := fmt.Fprintln(out, strings.Join(fields, "\t"))
		if err != nil {
			return err
		}
	}

	if tw != nil {
		return tw.Flush()
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
