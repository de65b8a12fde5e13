package ads

import (
	"encoding/json"
	"fmt"
	"io"
)

// Batch is one chunk of a streamed, paginated response.
type Batch struct {
	Results   []Row  `json:"results"`
	RequestID string `json:"requestId"`
}

// Stream yields response batches as they are decoded off the wire. It is
// finite and cannot be restarted; Recv returns io.EOF after the last batch.
type Stream struct {
	body io.ReadCloser
	dec  *json.Decoder
	done bool
}

// NewStream positions the decoder inside the response's top-level JSON array.
func NewStream(body io.ReadCloser) (*Stream, error) {
	dec := json.NewDecoder(body)
	tok, err := dec.Token()
	if err != nil {
		body.Close()
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		body.Close()
		return nil, fmt.Errorf("decode response: expected batch array, got %v", tok)
	}
	return &Stream{body: body, dec: dec}, nil
}

// Recv returns the next batch or io.EOF once the stream is drained. The
// underlying connection is closed on EOF and on any decode failure.
func (s *Stream) Recv() (*Batch, error) {
	if s.done {
		return nil, io.EOF
	}
	if !s.dec.More() {
		s.Close()
		return nil, io.EOF
	}

	var batch Batch
	if err := s.dec.Decode(&batch); err != nil {
		s.Close()
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	return &batch, nil
}

func (s *Stream) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.body.Close()
}
