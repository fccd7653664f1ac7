// Package tensor provides the concrete dense values that are bound to graph
// placeholders at evaluation time.
package tensor

// DataType represents runtime element type information for values.
type DataType int

// Supported data types.
const (
	Float64 DataType = iota
	Int64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float64, Int64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float64:
		return "float64"
	case Int64:
		return "int64"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type holds floating-point elements.
func (dt DataType) IsFloat() bool {
	return dt == Float64
}
