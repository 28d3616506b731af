package core

import "errors"

var (
	ErrUnknownTable      = errors.New("unknown table")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrDuplicateTable    = errors.New("duplicate table")
	ErrDuplicateColumn   = errors.New("duplicate column")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrRecordNotFound    = errors.New("record not found")
	ErrTypeConversion    = errors.New("type conversion failed")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrInvalidType       = errors.New("invalid column type")
	ErrUnknownPrimaryKey = errors.New("unknown primary key column")
	ErrMissingKey        = errors.New("missing primary key value")
)
