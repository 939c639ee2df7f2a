package model

import "strings"

// Static lookup tables shared by the classification pipeline. All of these
// are loaded once and never mutated at runtime; updating them is a
// deployment-time change.

// denialCodeCauses maps standard denial codes (CARC-style) to a root cause.
var denialCodeCauses = map[string]DenialCause{
	// Authorization
	"CO-15":  CauseMissingAuthorization,
	"CO-16":  CauseMissingAuthorization,
	"CO-197": CauseMissingAuthorization,
	"197":    CauseMissingAuthorization,
	"CO-198": CauseMissingAuthorization,

	// Coding
	"CO-4":   CauseInvalidCode,
	"4":      CauseInvalidCode,
	"CO-11":  CauseInvalidCode,
	"11":     CauseInvalidCode,
	"CO-181": CauseInvalidCode,

	// Eligibility
	"CO-26":  CauseEligibilityIssue,
	"CO-27":  CauseEligibilityIssue,
	"27":     CauseEligibilityIssue,
	"CO-177": CauseEligibilityIssue,

	// Duplicates
	"CO-18": CauseDuplicateClaim,
	"18":    CauseDuplicateClaim,
	"OA-18": CauseDuplicateClaim,

	// Documentation
	"CO-252": CauseInsufficientDocumentation,
	"252":    CauseInsufficientDocumentation,
	"CO-226": CauseInsufficientDocumentation,

	// Medical necessity
	"CO-50":  CauseMedicalNecessity,
	"50":     CauseMedicalNecessity,
	"CO-55":  CauseMedicalNecessity,
	"CO-167": CauseMedicalNecessity,

	// Timely filing
	"CO-29": CauseTimelyFiling,
	"29":    CauseTimelyFiling,

	// Coordination of benefits
	"CO-22": CauseCoordinationOfBenefits,
	"22":    CauseCoordinationOfBenefits,
	"CO-23": CauseCoordinationOfBenefits,
	"OA-23": CauseCoordinationOfBenefits,
}

// CauseForCode looks up the fixed denial-code table.
func CauseForCode(code string) (DenialCause, bool) {
	cause, ok := denialCodeCauses[code]
	return cause, ok
}

// KnownDenialCodes returns every code present in the fixed code table.
func KnownDenialCodes() []string {
	codes := make([]string, 0, len(denialCodeCauses))
	for code := range denialCodeCauses {
		codes = append(codes, code)
	}
	return codes
}

// causeKeywords holds the per-cause keyword templates used by the pattern
// matcher's substring fallback. Every cause except "other" has at least one
// non-empty entry.
var causeKeywords = map[DenialCause][]string{
	CauseMissingAuthorization: {
		"prior authorization",
		"pre-authorization",
		"precertification",
		"authorization required",
		"no authorization on file",
	},
	CauseInvalidCode: {
		"invalid procedure code",
		"invalid diagnosis code",
		"incorrect code",
		"code is inconsistent",
		"invalid modifier",
	},
	CauseEligibilityIssue: {
		"not eligible",
		"coverage terminated",
		"member not found",
		"not covered under",
		"eligibility",
	},
	CauseDuplicateClaim: {
		"duplicate",
		"already adjudicated",
		"previously processed",
	},
	CauseInsufficientDocumentation: {
		"documentation",
		"medical records",
		"additional information required",
		"records requested",
	},
	CauseMedicalNecessity: {
		"medical necessity",
		"not medically necessary",
		"experimental",
		"investigational",
	},
	CauseTimelyFiling: {
		"timely filing",
		"filing limit",
		"filing deadline",
		"submitted late",
	},
	CauseCoordinationOfBenefits: {
		"coordination of benefits",
		"other insurance",
		"primary payer",
		"secondary payer",
	},
}

// KeywordsForCause returns the keyword templates for a cause.
func KeywordsForCause(cause DenialCause) []string {
	return causeKeywords[cause]
}

// causeActions holds the fixed per-cause recommended action lists.
var causeActions = map[DenialCause][]string{
	CauseMissingAuthorization: {
		"Obtain retroactive authorization from the payer",
		"Resubmit the claim with the authorization number",
		"Attach clinical documentation supporting urgency if retro auth is denied",
	},
	CauseInvalidCode: {
		"Review procedure and diagnosis codes against current code sets",
		"Correct invalid or mismatched codes",
		"Resubmit the corrected claim",
	},
	CauseEligibilityIssue: {
		"Verify member eligibility for the date of service",
		"Confirm coverage details with the payer",
		"Bill the correct payer or the patient if coverage lapsed",
	},
	CauseDuplicateClaim: {
		"Locate the original claim and its adjudication status",
		"Void the duplicate submission if the original was paid",
		"Dispute the denial if the claims are not true duplicates",
	},
	CauseInsufficientDocumentation: {
		"Gather the requested medical records",
		"Submit documentation through the payer portal",
		"Track the documentation request to closure",
	},
	CauseMedicalNecessity: {
		"Collect clinical evidence supporting medical necessity",
		"Check the payer's medical policy for coverage criteria",
		"File an appeal with supporting literature",
	},
	CauseTimelyFiling: {
		"Confirm the payer's filing limit for this claim type",
		"Gather proof of timely submission",
		"File an appeal with the submission evidence",
	},
	CauseCoordinationOfBenefits: {
		"Identify the primary payer for the member",
		"Obtain the primary payer's explanation of benefits",
		"Rebill in the correct payer order",
	},
}

// ActionsForCause returns the recommended actions for a cause. Causes
// without an explicit list get a single manual-review action.
func ActionsForCause(cause DenialCause) []string {
	if actions, ok := causeActions[cause]; ok {
		out := make([]string, len(actions))
		copy(out, actions)
		return out
	}
	return []string{"Manual review required"}
}

// appealBaseRates holds the fixed per-cause base appeal success rates.
var appealBaseRates = map[DenialCause]float64{
	CauseMissingAuthorization:      0.70,
	CauseInvalidCode:               0.80,
	CauseEligibilityIssue:          0.50,
	CauseDuplicateClaim:            0.90,
	CauseInsufficientDocumentation: 0.75,
	CauseMedicalNecessity:          0.55,
	CauseTimelyFiling:              0.30,
	CauseCoordinationOfBenefits:    0.60,
	CauseOther:                     0.40,
}

// AppealBaseRate returns the base appeal success probability for a cause.
func AppealBaseRate(cause DenialCause) float64 {
	return appealBaseRates[cause]
}

// Subcategory keyword maps, scanned in order against the lowercased denial
// text. First match wins; no match falls back to the cause's default.
type subcategoryRule struct {
	Keyword     string
	Subcategory string
}

var causeSubcategoryRules = map[DenialCause][]subcategoryRule{
	CauseMissingAuthorization: {
		{Keyword: "retro", Subcategory: "Retro Authorization"},
		{Keyword: "expired", Subcategory: "Expired Authorization"},
		{Keyword: "referral", Subcategory: "Missing Referral"},
	},
	CauseInvalidCode: {
		{Keyword: "modifier", Subcategory: "Modifier Issue"},
		{Keyword: "diagnosis", Subcategory: "Diagnosis Code Mismatch"},
		{Keyword: "bundl", Subcategory: "Bundled Procedure"},
	},
}

var causeDefaultSubcategories = map[DenialCause]string{
	CauseMissingAuthorization: "No Authorization On File",
	CauseInvalidCode:          "Procedure Code Error",
}

// SubcategoryForText resolves the subcategory for a cause given the
// lowercased denial text. Causes without subcategory rules get "General".
func SubcategoryForText(cause DenialCause, lowerText string) string {
	rules, ok := causeSubcategoryRules[cause]
	if !ok {
		return "General"
	}
	for _, rule := range rules {
		if rule.Keyword != "" && strings.Contains(lowerText, rule.Keyword) {
			return rule.Subcategory
		}
	}
	return causeDefaultSubcategories[cause]
}

// Exemplar is one historical (text, cause) pair from the denial corpus.
type Exemplar struct {
	Text  string
	Cause DenialCause
}

// ExemplarCorpus returns the fixed seed list of historical denial texts used
// to build the pattern matcher's vector space.
func ExemplarCorpus() []Exemplar {
	return []Exemplar{
		{Text: "Prior authorization was not obtained before the procedure was performed", Cause: CauseMissingAuthorization},
		{Text: "Precertification requirements were not met for this service", Cause: CauseMissingAuthorization},
		{Text: "The authorization on file expired before the date of service", Cause: CauseMissingAuthorization},
		{Text: "Service requires referral from primary care physician and none was on file", Cause: CauseMissingAuthorization},

		{Text: "The procedure code is invalid for the date of service billed", Cause: CauseInvalidCode},
		{Text: "Diagnosis code is inconsistent with the procedure performed", Cause: CauseInvalidCode},
		{Text: "Modifier used is invalid for this procedure code combination", Cause: CauseInvalidCode},
		{Text: "The procedure code submitted has been deleted from the current code set", Cause: CauseInvalidCode},

		{Text: "Patient was not eligible for benefits on the date of service", Cause: CauseEligibilityIssue},
		{Text: "Coverage terminated prior to the date of service", Cause: CauseEligibilityIssue},
		{Text: "Member identification number does not match our enrollment records", Cause: CauseEligibilityIssue},
		{Text: "Services were provided outside the coverage period for this member", Cause: CauseEligibilityIssue},

		{Text: "This claim is a duplicate of a claim previously processed", Cause: CauseDuplicateClaim},
		{Text: "Claim was already adjudicated under a different claim number", Cause: CauseDuplicateClaim},
		{Text: "Exact duplicate of a service line already paid", Cause: CauseDuplicateClaim},

		{Text: "Additional medical records are required to process this claim", Cause: CauseInsufficientDocumentation},
		{Text: "Claim lacks documentation to support the level of service billed", Cause: CauseInsufficientDocumentation},
		{Text: "Operative report was requested and has not been received", Cause: CauseInsufficientDocumentation},

		{Text: "The service is not medically necessary based on the information submitted", Cause: CauseMedicalNecessity},
		{Text: "Procedure is considered experimental or investigational for this diagnosis", Cause: CauseMedicalNecessity},
		{Text: "Clinical criteria for medical necessity were not met", Cause: CauseMedicalNecessity},

		{Text: "Claim was received after the timely filing limit had passed", Cause: CauseTimelyFiling},
		{Text: "The time limit for filing this claim has expired", Cause: CauseTimelyFiling},
		{Text: "Submission received beyond the contractual filing deadline", Cause: CauseTimelyFiling},

		{Text: "Benefits were coordinated with another carrier as primary", Cause: CauseCoordinationOfBenefits},
		{Text: "Other insurance is primary and must be billed first", Cause: CauseCoordinationOfBenefits},
		{Text: "Explanation of benefits from the primary payer is required", Cause: CauseCoordinationOfBenefits},

		{Text: "Claim denied for a reason not otherwise specified", Cause: CauseOther},
	}
}
