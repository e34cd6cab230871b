package messages

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// SerializeEnvelope encodes an envelope as a JSON text frame.
func SerializeEnvelope(e *Envelope) ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %v", err)
	}
	return b, nil
}

// DeserializeEnvelope decodes a JSON text frame.
func DeserializeEnvelope(data []byte) (*Envelope, error) {
	e := &Envelope{}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %v", err)
	}
	if e.Event == "" {
		return nil, fmt.Errorf("envelope has no event name")
	}
	return e, nil
}

// SerializeCompressedEnvelope encodes an envelope as zstd compressed JSON for binary frames.
func SerializeCompressedEnvelope(e *Envelope) ([]byte, error) {
	b, err := SerializeEnvelope(e)
	if err != nil {
		return nil, err
	}

	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress envelope: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}

	return compressed.Bytes(), nil
}

// DeserializeCompressedEnvelope decodes a binary frame written by SerializeCompressedEnvelope.
func DeserializeCompressedEnvelope(data []byte) (*Envelope, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()

	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed envelope: %v", err)
	}

	return DeserializeEnvelope(b)
}
