package remote

import (
	"fmt"
	"sort"

	"github.com/hatstand/somfy/config"
)

// Device is one emulated remote. Receivers learn its Identity when paired.
type Device struct {
	Identity       uint32
	Label          string
	Topic          string
	DefaultCounter uint32
	StorageKey     string
}

func (d *Device) String() string {
	return fmt.Sprintf("%s (%#06x)", d.Label, d.Identity)
}

// Registry is the read-only set of configured remotes, addressed by topic.
type Registry struct {
	devices []*Device
	byTopic map[string]*Device
}

func NewRegistry(remotes []config.Remote) (*Registry, error) {
	r := &Registry{
		byTopic: make(map[string]*Device),
	}
	ids := make(map[uint32]bool)
	keys := make(map[string]bool)
	for _, c := range remotes {
		d := &Device{
			Identity:       uint32(c.ID),
			Label:          c.Name,
			Topic:          c.Topic,
			DefaultCounter: c.DefaultRollingCode,
			StorageKey:     c.StorageKey,
		}
		if d.Identity > 0xffffff {
			return nil, fmt.Errorf("remote %s does not fit in 24 bits", d)
		}
		if ids[d.Identity] || keys[d.StorageKey] || r.byTopic[d.Topic] != nil {
			return nil, fmt.Errorf("remote %s is not unique", d)
		}
		ids[d.Identity] = true
		keys[d.StorageKey] = true
		r.byTopic[d.Topic] = d
		r.devices = append(r.devices, d)
	}
	return r, nil
}

// Lookup finds the remote listening on topic. The result is a copy.
func (r *Registry) Lookup(topic string) (*Device, bool) {
	d, ok := r.byTopic[topic]
	if !ok {
		return nil, false
	}
	c := *d
	return &c, true
}

// Devices returns copies of the remotes in configuration order.
func (r *Registry) Devices() []*Device {
	devices := make([]*Device, len(r.devices))
	for i, d := range r.devices {
		c := *d
		devices[i] = &c
	}
	return devices
}

// Topics returns the command topics, sorted.
func (r *Registry) Topics() []string {
	topics := make([]string, 0, len(r.byTopic))
	for t := range r.byTopic {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}
