package stats

// AggregationType is the numeric aggregation code on the wire.
type AggregationType int

const (
	AggTypeUnknown      AggregationType = 0
	AggTypeCount        AggregationType = 1
	AggTypeSum          AggregationType = 2
	AggTypeDistribution AggregationType = 3
	AggTypeLastValue    AggregationType = 4
)

// Aggregation is the rule a view applies to its measurements. Buckets is
// populated only for the distribution variant; boundaries are encoded in
// the order given, monotonic or not.
type Aggregation struct {
	Type    AggregationType
	Buckets []float64
}

// Count aggregates by counting recorded measurements.
func Count() Aggregation { return Aggregation{Type: AggTypeCount} }

// Sum aggregates by summing recorded values.
func Sum() Aggregation { return Aggregation{Type: AggTypeSum} }

// LastValue keeps only the most recent recorded value.
func LastValue() Aggregation { return Aggregation{Type: AggTypeLastValue} }

// Distribution aggregates into a histogram with the given bucket
// boundaries.
func Distribution(bounds ...float64) Aggregation {
	return Aggregation{Type: AggTypeDistribution, Buckets: bounds}
}

// View is a named aggregation over a measure, optionally broken down by
// tag keys.
type View struct {
	Name        string
	Description string
	TagKeys     []string
	Measure     Measure
	Aggregation Aggregation
}
