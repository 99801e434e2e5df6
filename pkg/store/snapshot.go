package store

import (
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/zstd"
	"k8s.io/apimachinery/pkg/util/json"

	"github.com/l7mp/frameops/pkg/frame"
)

type snapshot struct {
	Vecs []*frame.Vec `json:"vecs"`
}

// WriteSnapshot writes all vecs of a store to w as zstd-compressed JSON, ordered by key.
func WriteSnapshot(s Store, w io.Writer) error {
	vecs := s.List()
	sort.Slice(vecs, func(i, j int) bool { return vecs[i].Key() < vecs[j].Key() })

	b, err := json.Marshal(snapshot{Vecs: vecs})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if _, err := enc.Write(b); err != nil {
		enc.Close() //nolint:errcheck
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return enc.Close()
}

// ReadSnapshot loads the vecs of a snapshot into a store.
func ReadSnapshot(s Store, r io.Reader) error {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return err
	}
	defer dec.Close()

	b, err := io.ReadAll(dec)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	for _, v := range snap.Vecs {
		if err := s.Put(v); err != nil {
			return err
		}
	}

	return nil
}
