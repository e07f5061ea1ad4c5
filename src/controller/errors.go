package controller

import "errors"

var (
	// ErrProposalNotFound means the proposal id does not exist.
	ErrProposalNotFound = errors.New("proposal not found")

	// ErrTradeNotFound means the trade id does not exist.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrUnsupportedOrderKind marks proposals whose order kind cannot be
	// routed to the brokerage. The proposal stays pending for the audit trail.
	ErrUnsupportedOrderKind = errors.New("order kind not supported for execution")

	// ErrPositionTooSmall means risk sizing reduced the quantity to zero.
	ErrPositionTooSmall = errors.New("position size is zero after risk sizing")

	// ErrDailyLimitReached means today's executed-trade ceiling is exhausted.
	ErrDailyLimitReached = errors.New("daily trade limit reached")
)
