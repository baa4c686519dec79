package core

// ReasonCode identifies why a request was allowed or denied.
type ReasonCode string

const (
	ReasonPublicDocument   ReasonCode = "public_document"
	ReasonAuthenticated    ReasonCode = "authenticated"
	ReasonOrgMember        ReasonCode = "org_member"
	ReasonTeamMember       ReasonCode = "team_member"
	ReasonNotAuthenticated ReasonCode = "not_authenticated"
	ReasonNotOrgMember     ReasonCode = "not_org_member"
	ReasonNoAllowedTeam    ReasonCode = "no_allowed_team"
)

// StatusHint tells the transport layer how to map a decision onto a status
// code. The mapping itself lives outside the engine.
type StatusHint string

const (
	StatusOK            StatusHint = "ok"
	StatusUnauthorized  StatusHint = "unauthorized"
	StatusForbiddenOrg  StatusHint = "forbidden_org"
	StatusForbiddenTeam StatusHint = "forbidden_team"
)

// AccessDecision is the single, final verdict for one document request.
// It is produced exactly once per request and never mutated.
type AccessDecision struct {
	Allowed bool       `json:"allowed"`
	Reason  ReasonCode `json:"reason"`
	Status  StatusHint `json:"status"`
}

func Allow(reason ReasonCode) AccessDecision {
	return AccessDecision{Allowed: true, Reason: reason, Status: StatusOK}
}

func Deny(reason ReasonCode, status StatusHint) AccessDecision {
	return AccessDecision{Allowed: false, Reason: reason, Status: status}
}
