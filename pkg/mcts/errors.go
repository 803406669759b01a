package mcts

import "errors"

// Sentinel errors the engine and its transport packages (pkg/priors,
// pkg/selfplay) wrap with fmt.Errorf's %w, following
// christopherWilliams98-risk-agent's plain stdlib error-wrapping style
// (no pkg/errors anywhere in the pack) rather than a bespoke error type
// hierarchy.
var (
	// ErrNoLegalActions reports that Execute was called against a state
	// with no legal actions. Execute itself signals this through
	// Decision.StopReason == StopNoLegalActions; callers such as mctsctl
	// wrap this error when they see that stop reason.
	ErrNoLegalActions = errors.New("mcts: no legal actions at current state")

	// ErrEndpointDisabled is returned by a priors/sink client that was
	// dialed with the "0" sentinel (or an empty endpoint).
	ErrEndpointDisabled = errors.New("mcts: endpoint disabled")

	// ErrMalformedResponse is returned when a priors/sink service's reply
	// does not match the framing spec §6.2/§6.3 describe.
	ErrMalformedResponse = errors.New("mcts: malformed service response")
)
