package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const example = `
mqtt:
  broker: tcp://broker.lan:1883
  username: somfy
  admin_topic: smartHome/somfy-remote/admin
radio:
  tx_pin: GPIO4
storage:
  path: /var/lib/somfy/codes.db
remotes:
  - id: 0x184623
    name: Living room
    topic: smartHome/livingRoom/blinds
    default_rolling_code: 1
  - id: "971547"
    topic: smartHome/office/blinds
    default_rolling_code: 1
    storage_key: office
`

func TestParse(t *testing.T) {
	Convey("Example config", t, func() {
		c, err := Parse([]byte(example))
		So(err, ShouldBeNil)

		So(c.MQTT.Broker, ShouldEqual, "tcp://broker.lan:1883")
		So(c.MQTT.StatusTopic, ShouldEqual, "smartHome/somfy-remote/status")
		So(c.MQTT.AckTopic, ShouldEqual, "smartHome/somfy-remote/ack")
		So(c.MQTT.QoS, ShouldEqual, 1)
		So(c.Radio.TxPin, ShouldEqual, "GPIO4")
		So(c.Radio.FrequencyKHz, ShouldEqual, 433420)
		So(c.HTTP.Listen, ShouldEqual, ":8080")
		So(c.ResetRollingCodes, ShouldBeFalse)

		So(c.Remotes, ShouldHaveLength, 2)
		So(c.Remotes[0].ID, ShouldEqual, 0x184623)
		So(c.Remotes[0].Name, ShouldEqual, "Living room")
		So(c.Remotes[0].StorageKey, ShouldEqual, "184623")
		So(c.Remotes[1].ID, ShouldEqual, 0x971547)
		So(c.Remotes[1].Name, ShouldEqual, "smartHome/office/blinds")
		So(c.Remotes[1].StorageKey, ShouldEqual, "office")
	})

	Convey("Load reads from disk", t, func() {
		path := filepath.Join(t.TempDir(), "somfy.yaml")
		So(os.WriteFile(path, []byte(example), 0600), ShouldBeNil)
		c, err := Load(path)
		So(err, ShouldBeNil)
		So(c.Storage.Path, ShouldEqual, "/var/lib/somfy/codes.db")
	})

	Convey("Zero QoS and reset pin can be configured", t, func() {
		c, err := Parse([]byte(`
mqtt:
  qos: 0
radio:
  reset_pin: 0
remotes:
  - id: 0x1
    topic: a`))
		So(err, ShouldBeNil)
		So(c.MQTT.QoS, ShouldEqual, 0)
		So(c.Radio.ResetPin, ShouldEqual, 0)
	})

	Convey("Absent QoS and reset pin take their defaults", t, func() {
		c, err := Parse([]byte(`
mqtt:
  broker: tcp://broker.lan:1883
radio:
  tx_pin: GPIO4
remotes:
  - id: 0x1
    topic: a`))
		So(err, ShouldBeNil)
		So(c.MQTT.QoS, ShouldEqual, 1)
		So(c.Radio.ResetPin, ShouldEqual, 24)
	})

	Convey("Missing file", t, func() {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		So(err, ShouldNotBeNil)
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"no remotes": `remotes: []`,
		"bad id": `
remotes:
  - id: zz
    topic: a`,
		"wide id": `
remotes:
  - id: 0x1000000
    topic: a`,
		"no topic": `
remotes:
  - id: 0x1`,
		"duplicate id": `
remotes:
  - id: 0x1
    topic: a
  - id: 0x1
    topic: b`,
		"duplicate topic": `
remotes:
  - id: 0x1
    topic: a
  - id: 0x2
    topic: a`,
		"duplicate key": `
remotes:
  - id: 0x1
    topic: a
    storage_key: k
  - id: 0x2
    topic: b
    storage_key: k`,
		"admin topic clash": `
mqtt:
  admin_topic: a
remotes:
  - id: 0x1
    topic: a`,
		"bad qos": `
mqtt:
  qos: 3
remotes:
  - id: 0x1
    topic: a`,
	}

	for name, data := range cases {
		Convey("Rejects "+name, t, func() {
			_, err := Parse([]byte(data))
			So(err, ShouldNotBeNil)
		})
	}
}

func TestAddress(t *testing.T) {
	Convey("Addresses print as six hex digits", t, func() {
		So(Address(0x184623).String(), ShouldEqual, "0x184623")
		So(Address(0x1).String(), ShouldEqual, "0x000001")
	})
}
