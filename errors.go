package ignore

import "errors"

var (
	// ErrInvalidArgument is returned by mutation APIs given a zero Rule, a nil
	// RuleSet, or an argument that would break a container invariant.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedGlob marks a pattern whose glob cannot be compiled.
	// Such a rule is kept but never matches.
	ErrMalformedGlob = errors.New("malformed glob")
)
