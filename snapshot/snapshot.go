package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/Braden-Griebel/fastsl/codec"
	"github.com/Braden-Griebel/fastsl/model"
)

// magic identifies a fastsl result snapshot, including the header version.
var magic = []byte("FSLSNP01")

// ErrBadSnapshot is returned when snapshot bytes cannot be parsed.
var ErrBadSnapshot = errors.New("malformed snapshot")

// Compression selects the payload compression of a snapshot.
type Compression string

const (
	// CompressionNone stores the encoded document as-is.
	CompressionNone Compression = "none"
	// CompressionZstd compresses the encoded document with zstd.
	CompressionZstd Compression = "zstd"
	// CompressionLZ4 compresses the encoded document with the lz4 frame
	// format.
	CompressionLZ4 Compression = "lz4"
)

// Document is the persisted form of one search run's results.
type Document struct {
	// CreatedAt is the time the snapshot was written.
	CreatedAt time.Time `json:"created_at"`

	// MaxDepth is the depth bound the search ran with.
	MaxDepth int `json:"max_depth,omitempty"`

	// EssentialProportion is the proportion the essential cutoff was derived
	// from.
	EssentialProportion float64 `json:"essential_proportion,omitempty"`

	// Combinations holds the lethal combinations, each as its sorted item
	// ids. Duplicates from independent expansion paths are preserved.
	Combinations [][]model.Item `json:"combinations"`
}

// FromCombinations builds a Document from in-memory search results.
func FromCombinations(u *model.Universe, combos []model.Combination) *Document {
	doc := &Document{
		CreatedAt:    time.Now().UTC(),
		Combinations: make([][]model.Item, 0, len(combos)),
	}
	for _, c := range combos {
		doc.Combinations = append(doc.Combinations, c.Items(u))
	}
	return doc
}

// ToCombinations re-interns the document's combinations into the given
// universe.
func (d *Document) ToCombinations(u *model.Universe) []model.Combination {
	combos := make([]model.Combination, 0, len(d.Combinations))
	for _, items := range d.Combinations {
		combos = append(combos, model.FromItems(u, items))
	}
	return combos
}

type writeOptions struct {
	codec       codec.Codec
	compression Compression
}

// WriteOption configures snapshot writing.
type WriteOption func(*writeOptions)

// WithCodec selects the document codec. If nil is passed, codec.Default is
// used.
func WithCodec(c codec.Codec) WriteOption {
	return func(o *writeOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression selects the payload compression. Default: zstd.
func WithCompression(c Compression) WriteOption {
	return func(o *writeOptions) {
		o.compression = c
	}
}

// Write encodes, compresses, and stores a snapshot document under name.
func Write(ctx context.Context, store Store, name string, doc *Document, optFns ...WriteOption) error {
	opts := writeOptions{
		codec:       codec.Default,
		compression: CompressionZstd,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	payload, err := opts.codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	payload, err = compress(payload, opts.compression)
	if err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(magic) + 2 + len(opts.codec.Name()) + len(opts.compression) + len(payload))
	buf.Write(magic)
	writeString(&buf, opts.codec.Name())
	writeString(&buf, string(opts.compression))
	buf.Write(payload)

	return store.Put(ctx, name, buf.Bytes())
}

// Read loads and decodes the snapshot stored under name.
func Read(ctx context.Context, store Store, name string) (*Document, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	if len(data) < len(magic) || !bytes.Equal(data[:len(magic)], magic) {
		return nil, fmt.Errorf("%w: bad magic", ErrBadSnapshot)
	}
	rest := data[len(magic):]

	codecName, rest, err := readString(rest)
	if err != nil {
		return nil, err
	}
	compressionName, rest, err := readString(rest)
	if err != nil {
		return nil, err
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrBadSnapshot, codecName)
	}

	payload, err := decompress(rest, Compression(compressionName))
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}

	var doc Document
	if err := c.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &doc, nil
}

func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone, "":
		return data, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer func() { _ = enc.Close() }()
		return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}
}

func decompress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone, "":
		return data, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte(byte(len(s)))
	buf.WriteString(s)
}

func readString(data []byte) (string, []byte, error) {
	if len(data) < 1 {
		return "", nil, fmt.Errorf("%w: truncated header", ErrBadSnapshot)
	}
	n := int(data[0])
	if len(data) < 1+n {
		return "", nil, fmt.Errorf("%w: truncated header", ErrBadSnapshot)
	}
	return string(data[1 : 1+n]), data[1+n:], nil
}
