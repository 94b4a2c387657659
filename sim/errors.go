package sim

import "fmt"

// InvalidParameterError reports a query or distribution parameter that
// violates its domain constraint. It is always returned before any sampling
// happens: a call that fails validation performs no computation.
type InvalidParameterError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

func invalidParam(param string, value float64, reason string) *InvalidParameterError {
	return &InvalidParameterError{Param: param, Value: value, Reason: reason}
}
