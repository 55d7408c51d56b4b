package regiondb

import "errors"

var (
	// ErrDecoding indicates a stored row does not match the expected shape.
	ErrDecoding = errors.New("failed to decode region row")
)
