package bras

import "errors"

// ErrBraNotFound - inventory item not found in DB
var ErrBraNotFound = errors.New("bra not found")

// ErrCreateBra is returned when item creation fails.
var ErrCreateBra = errors.New("failed to create bra")

// ErrListBras is returned when inventory listing fails.
var ErrListBras = errors.New("failed to list bras")

// ErrUpdateBra is returned when item update fails.
var ErrUpdateBra = errors.New("failed to update bra")

// ErrDeleteBra is returned when item deletion fails.
var ErrDeleteBra = errors.New("failed to delete bra")
