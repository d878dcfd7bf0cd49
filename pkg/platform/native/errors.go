package native

import "errors"

var (
	errEmptyShadow = errors.New("shadow has no layers")
	errInsetShadow = errors.New("inset shadows are not supported")
)
