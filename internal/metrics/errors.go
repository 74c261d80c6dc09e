package metrics

// SchemaMismatchError reports a source whose columns fit no recognized
// export shape, an attempt to merge exports of different shapes, or an
// aggregate query aimed at the wrong shape.
type SchemaMismatchError struct {
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return "metrics: " + e.Reason
}
