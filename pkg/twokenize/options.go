package twokenize

// Options control how committed matches become tokens. The zero value is the
// default: whitespace is dropped, runs are reported verbatim, contractions stay whole.
type Options struct {
	// EmitWhitespace includes Whitespace tokens in the output, so the token
	// texts concatenate back to the input.
	EmitWhitespace bool

	// NormalizeRepeatedPunctuation fills Token.Norm for punctuation runs:
	// "!!!" -> "!", "?!?!" -> "?!", "...." and "……" -> "...".
	NormalizeRepeatedPunctuation bool

	// SplitContractions emits "don't" as "do" + "n't" and "we'll" as "we" + "'ll".
	SplitContractions bool
}
