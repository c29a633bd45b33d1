package twokenize

import (
	"fmt"

	"github.com/cognicore/twokenize/pkg/twokenize/internalerr"
)

// DecodingError reports input that is not valid UTF-8. Offset is the byte
// offset of the first invalid sequence.
type DecodingError struct {
	Offset int
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("twokenize: invalid UTF-8 at byte %d", e.Offset)
}

// Unwrap returns internalerr.ErrInvalidEncoding.
func (e *DecodingError) Unwrap() error { return internalerr.ErrInvalidEncoding }
