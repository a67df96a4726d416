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

package fontfind

import (
	"bytes"
	"testing"

	"seehuhn.de/go/fontfind/fontfile"
	"seehuhn.de/go/fontfind/internal/fonttest"
)

type fakeFont struct {
	flavor  fontfile.Flavor
	version uint32
	tables  []string
}

func (f *fakeFont) Flavor() fontfile.Flavor { return f.flavor }
func (f *fakeFont) Version() uint32         { return f.version }
func (f *fakeFont) Close() error            { return nil }

func (f *fakeFont) Has(tags ...string) bool {
	for _, tag := range tags {
		found := false
		for _, have := range f.tables {
			if have == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestClassify(t *testing.T) {
	cases := []struct {
		font *fakeFont
		want Class
	}{
		{
			&fakeFont{fontfile.FlavorSFNT, fontfile.VersionTrueType, []string{"glyf", "loca"}},
			Class{Kind: KindTrueType, Outline: OutlineTrueType},
		},
		{
			&fakeFont{fontfile.FlavorSFNT, fontfile.VersionApple, []string{"glyf", "loca"}},
			Class{Kind: KindTrueType, Outline: OutlineTrueType},
		},
		{
			&fakeFont{fontfile.FlavorSFNT, fontfile.VersionCFF, []string{"CFF "}},
			Class{Kind: KindPostScript, Outline: OutlinePostScript},
		},
		{
			&fakeFont{fontfile.FlavorSFNT, fontfile.VersionCFF, []string{"CFF2", "fvar"}},
			Class{Kind: KindPostScript, Outline: OutlinePostScript, Variable: true},
		},
		{
			&fakeFont{fontfile.FlavorWOFF, fontfile.VersionTrueType, []string{"glyf", "fvar"}},
			Class{Kind: KindWOFF, Outline: OutlineTrueType, Variable: true},
		},
		{
			&fakeFont{fontfile.FlavorWOFF2, fontfile.VersionCFF, []string{"CFF "}},
			Class{Kind: KindWOFF2, Outline: OutlinePostScript},
		},
	}
	for i, test := range cases {
		got := Classify(test.font)
		if got != test.want {
			t.Errorf("%d: got %+v, want %+v", i, got, test.want)
		}
	}
}

func TestClassifyFixtures(t *testing.T) {
	for _, file := range fonttest.Tree {
		if file.NotAFont {
			continue
		}
		f, err := fontfile.Parse(bytes.NewReader(file.Data()))
		if err != nil {
			t.Errorf("%s: %v", file.Name, err)
			continue
		}
		c := Classify(f)

		var kind Kind
		switch {
		case file.Container == fonttest.ContainerWOFF:
			kind = KindWOFF
		case file.Container == fonttest.ContainerWOFF2:
			kind = KindWOFF2
		case file.CFF:
			kind = KindPostScript
		default:
			kind = KindTrueType
		}
		outline := OutlineTrueType
		if file.CFF {
			outline = OutlinePostScript
		}
		want := Class{Kind: kind, Outline: outline, Variable: file.Variable}
		if c != want {
			t.Errorf("%s: got %+v, want %+v", file.Name, c, want)
		}
	}
}

func TestKeep(t *testing.T) {
	ttStatic := Class{Kind: KindTrueType, Outline: OutlineTrueType}
	psVariable := Class{Kind: KindPostScript, Outline: OutlinePostScript, Variable: true}
	woffTT := Class{Kind: KindWOFF, Outline: OutlineTrueType}
	woff2PS := Class{Kind: KindWOFF2, Outline: OutlinePostScript, Variable: true}

	cases := []struct {
		filter Filter
		class  Class
		keep   bool
	}{
		{Filter{}, ttStatic, true},
		{Filter{}, psVariable, true},
		{Filter{}, Class{Kind: KindNone}, false},
		{Filter{OmitStatic: true}, ttStatic, false},
		{Filter{OmitStatic: true}, psVariable, true},
		{Filter{OmitVariable: true}, psVariable, false},
		{Filter{OmitTrueType: true}, ttStatic, false},
		{Filter{OmitTrueType: true}, woffTT, false},
		{Filter{OmitTrueType: true}, woff2PS, true},
		{Filter{OmitPostScript: true}, woff2PS, false},
		{Filter{OmitSFNT: true}, ttStatic, false},
		{Filter{OmitSFNT: true}, psVariable, false},
		{Filter{OmitSFNT: true}, woffTT, true},
		{Filter{OmitWOFF: true}, woffTT, false},
		{Filter{OmitWOFF: true}, woff2PS, true},
		{Filter{OmitWOFF2: true}, woff2PS, false},
		{Filter{OmitWOFF: true, OmitWOFF2: true}, ttStatic, true},
	}
	for i, test := range cases {
		if got := test.filter.Keep(test.class); got != test.keep {
			t.Errorf("%d: %s, %+v: got %t", i, test.filter, test.class, got)
		}
	}
}

func TestFilterString(t *testing.T) {
	cases := []struct {
		filter Filter
		want   string
	}{
		{Filter{}, "all fonts"},
		{Filter{OmitVariable: true}, "omit variable"},
		{Filter{OmitPostScript: true, OmitWOFF: true}, "omit PostScript, WOFF"},
	}
	for _, test := range cases {
		if got := test.filter.String(); got != test.want {
			t.Errorf("got %q, want %q", got, test.want)
		}
	}
}
