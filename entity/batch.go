package entity

// BatchError records a single failed item in a launch batch.
type BatchError struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// BatchResult summarizes a notification or provisioning run. Partial
// failure is data, not an error: the batch keeps going past bad items and
// reports them here.
type BatchResult struct {
	Total   int          `json:"total"`
	Success int          `json:"success"`
	Failed  int          `json:"failed"`
	Errors  []BatchError `json:"errors,omitempty"`
}

func (r *BatchResult) AddSuccess() {
	r.Success++
}

func (r *BatchResult) AddFailure(email string, err error) {
	r.Failed++
	r.Errors = append(r.Errors, BatchError{Email: email, Message: err.Error()})
}
