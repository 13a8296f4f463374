package sim

import "errors"

// Contract-violation sentinels. These are programming errors, not game
// outcomes: callers are expected to pre-validate with the capability
// predicates (CanAfford, CanPlay, CanExchange, CanDefer) and never see
// them. Nothing is recovered internally and no partial state is applied.
var (
	ErrTerminal            = errors.New("sim: game is over")
	ErrWrongPhase          = errors.New("sim: input not valid in current phase")
	ErrUnknownCard         = errors.New("sim: unknown card id")
	ErrNotInHand           = errors.New("sim: card not in hand")
	ErrPlayLimit           = errors.New("sim: per-quarter card limit reached")
	ErrInsufficientCapital = errors.New("sim: insufficient political capital")
	ErrUnknownChoice       = errors.New("sim: unknown choice id")
	ErrNoCrisis            = errors.New("sim: no crisis pending")
	ErrCannotDefer         = errors.New("sim: situation at maximum severity")
	ErrCannotExchange      = errors.New("sim: meter too low to exchange")
)
