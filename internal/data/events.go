package data

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Catalog event keys as used in events.yaml and by the director.
const (
	KeyBlackHole        = "black_hole"
	KeyZombie           = "zombie"
	KeyBoats            = "boats"
	KeyWarningThenBoats = "warning_boats"
	KeyCurtains         = "curtains"
	KeyFormation        = "formation"
	KeyBoss             = "boss"
	KeyWarning          = "warning"
)

// EventParams are the tunables of one catalog event. Fields that an event
// does not use stay zero.
type EventParams struct {
	Key        string  `yaml:"-"`
	DurationMs int     `yaml:"duration_ms"`
	WarningMs  int     `yaml:"warning_ms"`
	Weight     int     `yaml:"weight"` // director draw weight, 0 = never picked at random
	Toast      string  `yaml:"toast"`
	Text       string  `yaml:"text"`
	Radius     float64 `yaml:"radius"`
	Lanes      int     `yaml:"lanes"`
	Speed      float64 `yaml:"speed"`
	Strength   float64 `yaml:"strength"`
}

// Duration returns DurationMs as a time.Duration.
func (p *EventParams) Duration() time.Duration {
	return time.Duration(p.DurationMs) * time.Millisecond
}

// Warning returns WarningMs as a time.Duration.
func (p *EventParams) Warning() time.Duration {
	return time.Duration(p.WarningMs) * time.Millisecond
}

type eventListFile struct {
	Events map[string]yaml.Node `yaml:"events"`
}

// EventTable holds catalog parameters indexed by event key.
type EventTable struct {
	events map[string]*EventParams
}

// Get returns the parameters for key, or nil if none defined.
func (t *EventTable) Get(key string) *EventParams {
	return t.events[key]
}

// Count returns the number of configured events.
func (t *EventTable) Count() int {
	return len(t.events)
}

// Weights returns the positive director weights keyed by event.
func (t *EventTable) Weights() map[string]int {
	out := make(map[string]int, len(t.events))
	for k, p := range t.events {
		if p.Weight > 0 {
			out[k] = p.Weight
		}
	}
	return out
}

// Keys returns every configured key in sorted order.
func (t *EventTable) Keys() []string {
	keys := make([]string, 0, len(t.events))
	for k := range t.events {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadEventTable loads catalog parameters from a YAML file. Keys and fields
// missing from the file keep their built-in defaults.
func LoadEventTable(path string) (*EventTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event_list: %w", err)
	}
	return ParseEventTable(raw)
}

// ParseEventTable parses the YAML body of an event table.
func ParseEventTable(raw []byte) (*EventTable, error) {
	var f eventListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse event_list: %w", err)
	}
	t := DefaultEventTable()
	for key, node := range f.Events {
		// Entries override field by field; unset fields keep the default.
		p := &EventParams{}
		if def := t.Get(key); def != nil {
			*p = *def
		}
		if err := node.Decode(p); err != nil {
			return nil, fmt.Errorf("parse event_list: %s: %w", key, err)
		}
		if p.DurationMs < 0 {
			return nil, fmt.Errorf("parse event_list: %s: negative duration_ms", key)
		}
		if p.Weight < 0 {
			return nil, fmt.Errorf("parse event_list: %s: negative weight", key)
		}
		p.Key = key
		t.events[key] = p
	}
	return t, nil
}

// DefaultEventTable returns the built-in tuning.
func DefaultEventTable() *EventTable {
	defs := []*EventParams{
		{Key: KeyBlackHole, DurationMs: 4000, Weight: 3, Toast: "black hole", Radius: 175, Strength: 0.08},
		{Key: KeyZombie, DurationMs: 6000, Weight: 2, Toast: "zombie outbreak", Radius: 24, Strength: 0.35},
		{Key: KeyBoats, DurationMs: 5000, Toast: "boats", Lanes: 3, Speed: 3},
		{Key: KeyWarningThenBoats, DurationMs: 5000, WarningMs: 1500, Weight: 2, Toast: "incoming boats", Text: "BOATS INCOMING", Lanes: 3, Speed: 3},
		{Key: KeyCurtains, DurationMs: 3000, Weight: 1, Toast: "curtain call"},
		{Key: KeyFormation, DurationMs: 4000, Weight: 1, Toast: "formation", Radius: 200},
		{Key: KeyBoss, DurationMs: 0, WarningMs: 2000, Toast: "boss incoming", Text: "WARNING", Radius: 40, Strength: 2},
		{Key: KeyWarning, DurationMs: 1500, Text: "WARNING"},
	}
	t := &EventTable{events: make(map[string]*EventParams, len(defs))}
	for _, p := range defs {
		t.events[p.Key] = p
	}
	return t
}
