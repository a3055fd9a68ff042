package llm

// StreamChunk is a single increment of a streamed completion.
type StreamChunk struct {
	// Error is set when the stream failed mid-flight.
	Error error

	// Role is set on the first chunk of a response.
	Role string

	// Content is the text delta carried by this chunk.
	Content string

	// Finished is true on the final chunk of a response.
	Finished bool
}

// IsError returns true if this chunk carries a stream error.
func (c *StreamChunk) IsError() bool {
	return c.Error != nil
}
