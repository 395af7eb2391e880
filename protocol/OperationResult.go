package protocol

// Keys of an OperationResult.
const (
	ResultSuccess = "Success"
	ResultError   = "Error"
)

// OperationResult reports the outcome of a store or delete call. A
// successful operation maps "Success" to "1"; a failed one maps "Error" to a
// message. Failures are reported in-band, never as a raised error.
type OperationResult map[string]string

// SuccessResult builds the successful outcome.
func SuccessResult() OperationResult {
	return OperationResult{ResultSuccess: "1"}
}

// ErrorResult builds a failed outcome carrying the error message.
func ErrorResult(err error) OperationResult {
	return OperationResult{ResultError: err.Error()}
}

// IsSuccess reports whether the operation succeeded.
func (r OperationResult) IsSuccess() bool {
	_, ok := r[ResultSuccess]
	return ok
}
