package contract

import "context"

// IntentResolver maps an authenticated user's free-text message to zero or
// more tool invocations and a synthesized natural-language reply. The
// implementation is an external collaborator; the session engine depends on
// this contract only.
type IntentResolver interface {
	Resolve(ctx context.Context, req ResolverRequest) (ResolverResponse, error)
}

// ToolGateway executes tool requests against the read-only data stores. The
// identity is bound by the caller, never taken from model-controlled
// arguments, so a resolver can only ever read the authenticated user's data.
type ToolGateway interface {
	Execute(ctx context.Context, identity string, reqs []ToolRequest) []ToolResult
}

// CredentialVerifier checks a supplied credential against the stored secret.
// The default is exact equality; deployments that store hashes plug in
// their own.
type CredentialVerifier interface {
	Verify(stored, supplied string) bool
}
