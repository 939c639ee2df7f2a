package model

// Signal is one classifier component's vote: a cause and how sure it is.
type Signal struct {
	Cause      DenialCause `json:"cause"`
	Confidence float64     `json:"confidence"`
}

// DenialClassification is the full output of the classification pipeline.
// The ensemble combiner fills the cause, confidence and subcategory; the
// workflow resolver fills the remaining fields. Once resolved it is never
// mutated.
type DenialClassification struct {
	CauseCategory            DenialCause        `json:"cause_category"`
	Subcategory              string             `json:"subcategory"`
	ResolutionWorkflow       ResolutionWorkflow `json:"resolution_workflow"`
	RecommendedActions       []string           `json:"recommended_actions"`
	Confidence               float64            `json:"confidence"`
	AppealSuccessProbability float64            `json:"appeal_success_probability"`
	PriorityScore            int                `json:"priority_score"`
}
