package blob

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func stubReader(chunks [][]byte) *chunkReader {
	return &chunkReader{
		fetch: func(seq int) ([]byte, error) {
			if seq >= len(chunks) {
				return nil, io.EOF
			}
			return chunks[seq], nil
		},
	}
}

func TestChunkReaderReassembles(t *testing.T) {
	chunks := [][]byte{
		[]byte("%PDF-1.4 "),
		[]byte("some content "),
		[]byte("spread over chunks"),
	}
	want := bytes.Join(chunks, nil)

	got, err := io.ReadAll(stubReader(chunks))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("reassembled %q, want %q", got, want)
	}
}

func TestChunkReaderSmallDestination(t *testing.T) {
	r := stubReader([][]byte{[]byte("abcdef"), []byte("ghij")})

	var out []byte
	buf := make([]byte, 3)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
	}

	if string(out) != "abcdefghij" {
		t.Fatalf("got %q", out)
	}
}

func TestChunkReaderEmptyBlob(t *testing.T) {
	got, err := io.ReadAll(stubReader(nil))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no bytes, got %d", len(got))
	}
}

func TestChunkReaderPropagatesFetchError(t *testing.T) {
	boom := errors.New("connection reset")
	r := &chunkReader{
		fetch: func(seq int) ([]byte, error) {
			if seq == 0 {
				return []byte("first"), nil
			}
			return nil, boom
		},
	}

	_, err := io.ReadAll(r)
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	// The error is sticky.
	if _, err := r.Read(make([]byte, 1)); !errors.Is(err, boom) {
		t.Fatalf("expected sticky error, got %v", err)
	}
}

func TestChunkReaderReadAfterClose(t *testing.T) {
	r := stubReader([][]byte{[]byte("data")})
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := r.Read(make([]byte, 4)); !errors.Is(err, errReaderClosed) {
		t.Fatalf("expected closed error, got %v", err)
	}
}
