package remote

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/hatstand/somfy/config"
	"github.com/hatstand/somfy/counter"
	"github.com/hatstand/somfy/mocks"
	"go.uber.org/zap/zaptest"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistry(t *testing.T) {
	Convey("Given a registry", t, func() {
		r, err := NewRegistry([]config.Remote{livingRoom, bedroom})
		So(err, ShouldBeNil)

		Convey("Remotes are found by topic", func() {
			d, ok := r.Lookup(bedroom.Topic)
			So(ok, ShouldBeTrue)
			So(d.Identity, ShouldEqual, 0x1a2b3c)
			So(d.String(), ShouldEqual, "Bedroom (0x1a2b3c)")

			_, ok = r.Lookup("smartHome/bedroom")
			So(ok, ShouldBeFalse)
		})

		Convey("Devices keep configuration order", func() {
			devices := r.Devices()
			So(devices, ShouldHaveLength, 2)
			So(devices[0].Label, ShouldEqual, "Living room")
			So(devices[1].Label, ShouldEqual, "Bedroom")
		})

		Convey("Callers cannot change the registered remotes", func() {
			d, _ := r.Lookup(bedroom.Topic)
			d.Identity = 0x000001
			d.Topic = "smartHome/elsewhere"
			r.Devices()[0].StorageKey = "changed"

			d, ok := r.Lookup(bedroom.Topic)
			So(ok, ShouldBeTrue)
			So(d.Identity, ShouldEqual, 0x1a2b3c)
			So(r.Devices()[0].StorageKey, ShouldEqual, "184623")
		})

		Convey("Topics are sorted", func() {
			So(r.Topics(), ShouldResemble, []string{bedroom.Topic, livingRoom.Topic})
		})
	})

	Convey("Duplicate identities are refused", t, func() {
		twin := bedroom
		twin.ID = livingRoom.ID
		_, err := NewRegistry([]config.Remote{livingRoom, twin})
		So(err, ShouldNotBeNil)
	})

	Convey("Duplicate topics are refused", t, func() {
		twin := bedroom
		twin.Topic = livingRoom.Topic
		_, err := NewRegistry([]config.Remote{livingRoom, twin})
		So(err, ShouldNotBeNil)
	})

	Convey("Identities wider than 24 bits are refused", t, func() {
		wide := livingRoom
		wide.ID = 0x1000000
		_, err := NewRegistry([]config.Remote{wide})
		So(err, ShouldNotBeNil)
	})
}

func TestAdmin(t *testing.T) {
	Convey("Given remotes that have been used", t, func() {
		registry := mustRegistry(livingRoom, bedroom)
		store := counter.NewMemoryStore()
		So(store.Set("184623", 40), ShouldBeNil)
		So(store.Set("1a2b3c", 500), ShouldBeNil)

		Convey("Snapshot reports the next codes", func() {
			states, err := Snapshot(registry, store)
			So(err, ShouldBeNil)
			So(states, ShouldResemble, []State{
				{Label: "Living room", Identity: "0x184623", Topic: livingRoom.Topic, RollingCode: 40},
				{Label: "Bedroom", Identity: "0x1a2b3c", Topic: bedroom.Topic, RollingCode: 500},
			})
			So(LogRemotes(registry, store, zaptest.NewLogger(t)), ShouldBeNil)
		})

		Convey("ResetCounters restores the defaults", func() {
			So(ResetCounters(registry, store, zaptest.NewLogger(t)), ShouldBeNil)
			code, _ := store.Get("184623", 0)
			So(code, ShouldEqual, 1)
			code, _ = store.Get("1a2b3c", 0)
			So(code, ShouldEqual, 100)
		})
	})

	Convey("ResetCounters carries on past a failing remote", t, func() {
		mock := gomock.NewController(t)
		defer mock.Finish()
		store := mocks.NewMockStore(mock)
		store.EXPECT().Reset("184623", uint32(1)).Return(counter.ErrClosed)
		store.EXPECT().Reset("1a2b3c", uint32(100)).Return(nil)

		err := ResetCounters(mustRegistry(livingRoom, bedroom), store, zaptest.NewLogger(t))
		So(errors.Is(err, counter.ErrClosed), ShouldBeTrue)
	})
}
