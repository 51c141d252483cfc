package metrics

/*
Labels and so on for metrics used in stagectl.
*/

const (
	LabelMethod  = "method"
	LabelSuccess = "success"

	// Labels for staging transition metrics
	LabelOperation = "operation"
)
