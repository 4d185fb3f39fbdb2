package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// Format is an interchange format.
type Format string

const (
	FormatGraphML Format = "graphml"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatDOT     Format = "dot" // write only
)

// Compression is a stream compression applied on top of a format.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

var compressionExts = map[string]Compression{
	".gz":  CompressionGzip,
	".zst": CompressionZstd,
	".lz4": CompressionLZ4,
}

var formatExts = map[string]Format{
	".graphml": FormatGraphML,
	".xml":     FormatGraphML,
	".json":    FormatJSON,
	".yaml":    FormatYAML,
	".yml":     FormatYAML,
	".dot":     FormatDOT,
	".gv":      FormatDOT,
}

// Options controls id handling shared by all formats.
type Options struct {
	// StoreIDs keeps the document's node and edge ids as passthrough
	// attributes so they are written back unchanged.
	StoreIDs bool

	// OrderedVertices advertises canonical node ids when writing GraphML.
	OrderedVertices bool
}

// ParseFormat validates a format name such as "graphml" or "YAML".
func ParseFormat(name string) (Format, error) {
	if err := errors.ValidateFormat(name, "graphml", "json", "yaml", "dot"); err != nil {
		return "", err
	}
	return Format(strings.ToLower(name)), nil
}

// DetectFormat infers format and compression from a file name, e.g.
// "g.graphml.gz" is GraphML with gzip.
func DetectFormat(path string) (Format, Compression, error) {
	name := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(name)
	comp, compressed := compressionExts[ext]
	if compressed {
		name = strings.TrimSuffix(name, ext)
		ext = filepath.Ext(name)
	}
	f, ok := formatExts[ext]
	if !ok {
		return "", "", errors.New(errors.ErrCodeInvalidFormat,
			"cannot infer format from %q (want .graphml, .xml, .json, .yaml or .dot)", filepath.Base(path))
	}
	return f, comp, nil
}

// openFile opens path for reading and unwraps its compression.
func openFile(path string, comp Compression) (io.ReadCloser, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r, err := decompress(f, comp)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &stackedReader{Reader: r, layers: layers{r, f}}, nil
}

// createFile creates path for writing through comp. Closing the returned
// writer flushes the compressor before closing the file.
func createFile(path string, comp Compression) (io.WriteCloser, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	w, err := compress(f, comp)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &stackedWriter{Writer: w, layers: layers{w, f}}, nil
}

func decompress(r io.Reader, comp Compression) (io.ReadCloser, error) {
	switch comp {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		return gzip.NewReader(r)
	case CompressionZstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported compression %q", comp)
	}
}

func compress(w io.Writer, comp Compression) (io.WriteCloser, error) {
	switch comp {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZstd:
		return zstd.NewWriter(w)
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported compression %q", comp)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// layers closes each wrapped stream, innermost first, and reports the first
// error.
type layers []io.Closer

func (l layers) Close() error {
	var first error
	for _, c := range l {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type stackedReader struct {
	io.Reader
	layers
}

type stackedWriter struct {
	io.Writer
	layers
}
