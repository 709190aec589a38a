package models

// Result is the outcome of a mutating action. Exactly one of Success and
// Error is set. Build it with OK or Fail.
type Result struct {
	Success string      `json:"success,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Status  int         `json:"status"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(msg string) Result {
	return Result{Success: msg, Status: 200}
}

func Fail(status int, msg string, details interface{}) Result {
	return Result{Error: msg, Details: details, Status: status}
}

// WithData attaches a payload to a successful result.
func (r Result) WithData(v interface{}) Result {
	if r.Error == "" {
		r.Data = v
	}
	return r
}

func (r Result) OK() bool { return r.Error == "" }
