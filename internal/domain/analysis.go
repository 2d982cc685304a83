package domain

// AnalysisResult 账单分析结果（由外部 Analysis Service 返回的 analysis 字段）
// Shape mirrors the analysis backend response: summary + recommendations
// at the top level, structured detail nested under details.
type AnalysisResult struct {
	Summary         string           `json:"summary"`
	Recommendations Recommendations  `json:"recommendations,omitempty"`
	Details         *AnalysisDetails `json:"details,omitempty"`
}

// AnalysisDetails nested detail block of an analysis
type AnalysisDetails struct {
	UCRValidation  *UCRValidation  `json:"ucr_validation,omitempty"`
	FraudDetection *FraudDetection `json:"fraud_detection,omitempty"`
}

// UCRValidation usual-customary-reasonable rate validation
type UCRValidation struct {
	ProcedureAnalysis []Procedure `json:"procedure_analysis"`
	OverallAssessment string      `json:"overall_assessment,omitempty"`
	Recommendations   []string    `json:"recommendations,omitempty"`
	References        []string    `json:"references,omitempty"`
}

// Procedure 单项收费与 UCR 费率对比
type Procedure struct {
	Description          string   `json:"description"`
	BilledCost           float64  `json:"billed_cost"`
	UCRRate              float64  `json:"ucr_rate"`
	Difference           float64  `json:"difference"`
	PercentageDifference *float64 `json:"percentage_difference,omitempty"`
	IsReasonable         *bool    `json:"is_reasonable,omitempty"`
	Comments             string   `json:"comments,omitempty"`
}

// FraudDetection optional fraud screening block (present in some
// backend versions only).
type FraudDetection struct {
	Detected bool     `json:"detected"`
	Details  []string `json:"details,omitempty"`
}
