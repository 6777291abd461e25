package stats

// Measure is a named numeric quantity definition. The two concrete
// variants shipped here are Int64Measure and Float64Measure; any other
// implementation is reported to the daemon with the unknown value type.
type Measure interface {
	Name() string
	Description() string
	Unit() string
}

// Int64Measure is a measure of integer values.
type Int64Measure struct {
	name        string
	description string
	unit        string
}

// Int64 creates an integer measure.
func Int64(name, description, unit string) *Int64Measure {
	return &Int64Measure{name: name, description: description, unit: unit}
}

func (m *Int64Measure) Name() string        { return m.name }
func (m *Int64Measure) Description() string { return m.description }
func (m *Int64Measure) Unit() string        { return m.unit }

// M creates a measurement of this measure.
func (m *Int64Measure) M(v int64) Measurement {
	return Measurement{Measure: m, Value: float64(v)}
}

// Float64Measure is a measure of floating-point values.
type Float64Measure struct {
	name        string
	description string
	unit        string
}

// Float64 creates a floating-point measure.
func Float64(name, description, unit string) *Float64Measure {
	return &Float64Measure{name: name, description: description, unit: unit}
}

func (m *Float64Measure) Name() string        { return m.name }
func (m *Float64Measure) Description() string { return m.description }
func (m *Float64Measure) Unit() string        { return m.unit }

// M creates a measurement of this measure.
func (m *Float64Measure) M(v float64) Measurement {
	return Measurement{Measure: m, Value: v}
}

// Measurement is a single recorded value of a measure. The value is held
// as a float64 regardless of the measure variant; integer measures are
// truncated back to int64 at encode time.
type Measurement struct {
	Measure Measure
	Value   float64
}
