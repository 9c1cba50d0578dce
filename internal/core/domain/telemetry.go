package domain

// Step attributes recorded on install spans and rendered in step lines.
const (
	// StepAttrCached marks a step satisfied from the artifact cache.
	StepAttrCached = "step.cached"
	// StepAttrSkipped marks a step that did no work.
	StepAttrSkipped = "step.skipped"
	// StepAttrDetail carries a short reason shown next to a skipped step.
	StepAttrDetail = "step.detail"
)
