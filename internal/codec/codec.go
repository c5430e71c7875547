// Package codec provides encode/decode interfaces for snapshot
// serialization.
package codec

// Codec encodes and decodes exported snapshots for delivery to sinks.
type Codec interface {
	// Marshal serializes v into bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into v (must be a pointer).
	Unmarshal(data []byte, v any) error
	// Name returns the codec identifier used for diagnostics and the
	// HTTP handler's content type.
	Name() string
}
