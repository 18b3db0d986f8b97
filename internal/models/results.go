package models

// ValidationResult is one validator's findings. Errors are hard failures,
// Warnings are quality signals. Valid is true iff Errors is empty.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewValidationResult builds a result with both lists non-nil.
func NewValidationResult(errs, warnings []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return ValidationResult{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// ConfidenceResult is the aggregate decision for one report.
type ConfidenceResult struct {
	Score       int      `json:"score"`
	AutoApprove bool     `json:"auto_approve"`
	Flags       []string `json:"flags"`
}
