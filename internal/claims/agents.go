// Package claims runs a panel of specialist agents over insurance claim
// text in parallel and aggregates their findings.
package claims

import (
	"time"

	"github.com/castlebay/agentlab"
)

// Specialist instruction prompts. Each agent sees only the claim text and
// answers independently; combining their views is the caller's job.
const (
	damageAssessorPrompt = `You are an insurance damage assessor. Review the claim text and
summarize the reported damage: what was damaged, how severely, and what
repairs or replacements the description implies. Be concise and factual;
note any details the claimant left out that an assessor would need.`

	coverageVerifierPrompt = `You are an insurance coverage verifier. Review the claim text and
identify which policy coverages it appears to invoke (collision,
comprehensive, liability, personal injury, property) and what
documentation would be required to verify the claim. Flag anything the
claim text leaves ambiguous about coverage.`

	fraudAnalystPrompt = `You are an insurance fraud-risk analyst. Review the claim text for
indicators commonly associated with fraudulent claims: inconsistent
timelines, vague circumstances, conveniently missing witnesses or
documentation, or unusual claim amounts. Rate the fraud risk as low,
medium or high and justify the rating from the text alone.`

	triageRecommenderPrompt = `You are an insurance claims triage specialist. Review the claim text
and recommend a next action: fast-track approval, standard processing,
request for more information, or referral to special investigation.
State the single recommended action first, then the reasoning.`
)

// agentNames in panel order.
const (
	DamageAssessor    = "DamageAssessor"
	CoverageVerifier  = "CoverageVerifier"
	FraudAnalyst      = "FraudAnalyst"
	TriageRecommender = "TriageRecommender"
)

// NewFlow builds the concurrent analysis flow for the claims panel.
func NewFlow(model string, maxTurns int, timeout time.Duration) *agentlab.ConcurrentFlow {
	return &agentlab.ConcurrentFlow{
		Name:     "claims-analysis",
		Model:    model,
		MaxTurns: maxTurns,
		Timeout:  timeout,
		Agents: []agentlab.FlowAgent{
			{Name: DamageAssessor, Instructions: damageAssessorPrompt},
			{Name: CoverageVerifier, Instructions: coverageVerifierPrompt},
			{Name: FraudAnalyst, Instructions: fraudAnalystPrompt},
			{Name: TriageRecommender, Instructions: triageRecommenderPrompt},
		},
	}
}

// SampleClaim is the bundled demonstration claim analyzed at startup when
// the host is configured to do so.
const SampleClaim = `Claim number: CLM-2024-00317. On the evening of March 3rd I was driving
home on Route 9 when a deer ran into the road. I swerved to avoid it and
hit the guardrail. The front bumper and right headlight are damaged and
the hood is dented. Nobody was hurt. I have photos of the damage but no
police report was filed. My policy number is POL-88421. I would like the
repairs covered and a rental car while my car is in the shop.`
