package gazeta

// Decoder converts raw response bytes into valid UTF-8 text.
type Decoder interface {
	// Decode interprets body using the Content-Type header value as a
	// hint. It never fails: undecodable byte sequences are substituted
	// so the result is always valid UTF-8.
	Decode(body []byte, contentType string) string
}
