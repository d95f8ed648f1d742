package constants

// DocumentStatus is the outcome of one document's extraction run.
type DocumentStatus string

const (
	StatusSucceeded DocumentStatus = "SUCCEEDED"
	StatusPartial   DocumentStatus = "PARTIAL"
	StatusFailed    DocumentStatus = "FAILED"
)
