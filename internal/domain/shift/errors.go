package shift

import "errors"

var (
	ErrRuleNotFound = errors.New("no active attendance rule")
)
