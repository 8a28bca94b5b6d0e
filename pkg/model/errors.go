package model

import (
	"errors"

	"github.com/grexie/classifier/pkg/numeric"
)

var (
	// ErrShapeMismatch is returned when feature, weight or label dimensions
	// disagree.
	ErrShapeMismatch = numeric.ErrShapeMismatch

	// ErrUninitializedModel is returned by prediction before any weights exist.
	ErrUninitializedModel = errors.New("model: weights are not initialized")

	// ErrInvalidParams is returned for unusable training parameters.
	ErrInvalidParams = errors.New("model: invalid training parameters")
)
