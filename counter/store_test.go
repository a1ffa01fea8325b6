package counter

import (
	"errors"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func behavesLikeAStore(s Store) {
	Convey("Unknown keys return the default", func() {
		code, err := s.Get("184623", 1)
		So(err, ShouldBeNil)
		So(code, ShouldEqual, 1)

		code, err = s.Get("184623", 99)
		So(err, ShouldBeNil)
		So(code, ShouldEqual, 99)
	})

	Convey("Set then Get returns the stored value whatever the default", func() {
		So(s.Set("971547", 42), ShouldBeNil)
		for _, def := range []uint32{0, 1, 42, 0xffffffff} {
			code, err := s.Get("971547", def)
			So(err, ShouldBeNil)
			So(code, ShouldEqual, 42)
		}
	})

	Convey("Keys are independent", func() {
		So(s.Set("a", 7), ShouldBeNil)
		So(s.Set("b", 9), ShouldBeNil)
		a, _ := s.Get("a", 0)
		b, _ := s.Get("b", 0)
		So(a, ShouldEqual, 7)
		So(b, ShouldEqual, 9)
	})

	Convey("Reset goes back to the default", func() {
		So(s.Set("336124", 1000), ShouldBeNil)
		So(s.Reset("336124", 1), ShouldBeNil)
		code, err := s.Get("336124", 5)
		So(err, ShouldBeNil)
		So(code, ShouldEqual, 1)
	})

	Convey("Full width codes survive", func() {
		So(s.Set("wide", 0x12345678), ShouldBeNil)
		code, _ := s.Get("wide", 0)
		So(code, ShouldEqual, 0x12345678)
	})
}

func TestMemoryStore(t *testing.T) {
	Convey("MemoryStore", t, func() {
		behavesLikeAStore(NewMemoryStore())
	})
}

func TestBoltStore(t *testing.T) {
	Convey("BoltStore", t, func() {
		s, err := OpenBoltStore(filepath.Join(t.TempDir(), "codes.db"))
		So(err, ShouldBeNil)
		Reset(func() {
			s.Close()
		})
		behavesLikeAStore(s)
	})

	Convey("Codes survive reopening the database", t, func() {
		path := filepath.Join(t.TempDir(), "codes.db")
		s, err := OpenBoltStore(path)
		So(err, ShouldBeNil)
		So(s.Set("184623", 17), ShouldBeNil)
		So(s.Close(), ShouldBeNil)

		s, err = OpenBoltStore(path)
		So(err, ShouldBeNil)
		defer s.Close()
		code, err := s.Get("184623", 1)
		So(err, ShouldBeNil)
		So(code, ShouldEqual, 17)
	})

	Convey("Writes to a closed database fail", t, func() {
		s, err := OpenBoltStore(filepath.Join(t.TempDir(), "codes.db"))
		So(err, ShouldBeNil)
		So(s.Close(), ShouldBeNil)
		So(errors.Is(s.Set("184623", 2), ErrClosed), ShouldBeTrue)
	})
}
