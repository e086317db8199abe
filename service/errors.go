package service

import "errors"

// Precondition failures surfaced to callers as rejected operations. None of
// them leaves side effects behind.
var (
	ErrSeasonItemNotFound = errors.New("season item does not exist")
	ErrNotRegistered      = errors.New("user is not registered for this season")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrRankNotInSeason    = errors.New("target rank does not belong to this season")
	ErrInvalidSeasonDates = errors.New("season start date must not be after its end date")
	ErrNoLodestoneId      = errors.New("user has no lodestone id on file")
	ErrCharacterMismatch  = errors.New("lodestone character page does not mention the in-game name")
)

// ErrNothingToAward marks a promotion no-op: the user already holds the target
// rank or a higher one. Callers render this distinctly from a precondition
// failure.
var ErrNothingToAward = errors.New("user already holds the target rank or a higher one")
