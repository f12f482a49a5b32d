// Package logicbridge translates raw sensor readings into world events.
// The metric-to-event mapping is a static dispatch table, so new sensor
// kinds are new rows rather than new code branches.
package logicbridge

import (
	"tidewatch/events"
	"tidewatch/ids"
	"tidewatch/vecmath"
)

// Sensor is a single raw sensor reading.
type Sensor struct {
	Metric    string
	Value     float64
	Threshold float64
	OwnerID   ids.EntityId
	Position  vecmath.Vec3
}

type mapping struct {
	eventType events.Type
	radius    float64
}

// table is the static metric -> event dispatch. Unknown metrics are
// silently dropped; callers are expected to validate.
var table = map[string]mapping{
	"WaterLevel": {eventType: events.FloodingAlarm, radius: 50},
}

// Translate converts sensor readings whose value exceeds their threshold
// into world events, via the static dispatch table above.
func Translate(sensors []Sensor) []events.Event {
	var out []events.Event
	for _, s := range sensors {
		if s.Value <= s.Threshold {
			continue
		}
		m, ok := table[s.Metric]
		if !ok {
			continue
		}
		out = append(out, events.Event{
			Type:      m.eventType,
			Position:  s.Position,
			Radius:    m.radius,
			SourceID:  s.OwnerID,
			Intensity: s.Value - s.Threshold,
		})
	}
	return out
}
