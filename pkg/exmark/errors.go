package exmark

import (
	"errors"
	"fmt"
)

// ErrNotOpen indicates the editor has no open package: it was never opened
// or it was already closed.
var ErrNotOpen = errors.New("editor is not open")

// ErrInvalidImageNumber indicates an image id that no AddImage call on this
// editor ever returned.
var ErrInvalidImageNumber = errors.New("invalid image number")

// BindError represents an error while binding a background to a worksheet.
type BindError struct {
	Sheet int
	Part  string // "relationships", "worksheet", "content types"
	Err   error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind error on sheet %d (%s): %v", e.Sheet, e.Part, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// NewBindError creates a new BindError.
func NewBindError(sheet int, part string, err error) *BindError {
	return &BindError{
		Sheet: sheet,
		Part:  part,
		Err:   err,
	}
}
