package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"text/tabwriter"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/arloliu/varseq/blob"
	"github.com/arloliu/varseq/encoding"
	"github.com/arloliu/varseq/format"
	"github.com/arloliu/varseq/internal/simd"
)

// sink keeps decoded values alive so the decode loops are not optimised away.
var sink uint32

type result struct {
	name     string
	push     time.Duration
	decode   time.Duration
	size     int
	blobSize int
}

// generate returns cfg.size random values in [1, cfg.size), sorted and deduplicated.
func generate(cfg config) *roaring.Bitmap {
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed))
	upper := uint32(cfg.size - 1) //nolint:gosec

	bm := roaring.New()
	for range cfg.size {
		bm.Add(1 + rng.Uint32N(upper))
	}

	return bm
}

func run(cfg config, logger *slog.Logger, out io.Writer) error {
	logger.Debug("shuffle kernel", "ssse3", simd.HasSSSE3())

	start := time.Now()
	bm := generate(cfg)
	reference := bm.ToArray()
	logger.Info("generated input",
		"requested", cfg.size,
		"distinct", len(reference),
		"elapsed", time.Since(start),
	)

	table := encoding.DefaultDescriptorTable()
	results := make([]result, 0, 3)

	su, err := benchSimpleUnary(reference, cfg)
	if err != nil {
		return err
	}
	results = append(results, su)

	gb, err := benchGroupBinary(reference, table, cfg)
	if err != nil {
		return err
	}
	results = append(results, gb)

	refStart := time.Now()
	for _, v := range reference {
		sink = v
	}
	results = append(results, result{
		name:   "REF",
		decode: time.Since(refStart),
		size:   4 * len(reference),
	})

	bm.RunOptimize()
	roaringSize := int(bm.GetSerializedSizeInBytes()) //nolint:gosec

	return report(out, results, len(reference), roaringSize, cfg.compression)
}

func benchSimpleUnary(reference []uint32, cfg config) (result, error) {
	f := encoding.NewSimpleUnaryFactory()

	start := time.Now()
	for _, v := range reference {
		if err := f.Push(v); err != nil {
			return result{}, fmt.Errorf("SimpleUnary push: %w", err)
		}
	}
	seq := f.Finalize()
	push := time.Since(start)

	start = time.Now()
	for v := range seq.All() {
		sink = v
	}
	decode := time.Since(start)

	return finish("SU", seq, push, decode, reference, cfg)
}

func benchGroupBinary(reference []uint32, table *encoding.DescriptorTable, cfg config) (result, error) {
	f := encoding.NewGroupBinaryFactory()

	start := time.Now()
	for _, v := range reference {
		if err := f.PushIfNotTop(v); err != nil {
			return result{}, fmt.Errorf("GroupBinary push: %w", err)
		}
	}
	seq := f.Finalize()
	push := time.Since(start)

	start = time.Now()
	it := seq.Iter(table)
	for {
		values, n, ok := it.Next()
		if !ok {
			break
		}
		for _, v := range values[:n] {
			sink = v
		}
	}
	decode := time.Since(start)

	return finish("GB", seq, push, decode, reference, cfg)
}

// finish verifies seq against reference when requested and measures its blob size.
func finish(name string, seq encoding.Sequence, push, decode time.Duration, reference []uint32, cfg config) (result, error) {
	if cfg.verify {
		if err := verify(seq, reference); err != nil {
			return result{}, fmt.Errorf("%s: %w", name, err)
		}
	}

	data, err := blob.Marshal(seq, blob.WithCompression(cfg.compression))
	if err != nil {
		return result{}, fmt.Errorf("%s marshal: %w", name, err)
	}

	return result{
		name:     name,
		push:     push,
		decode:   decode,
		size:     seq.Size(),
		blobSize: len(data),
	}, nil
}

func verify(seq encoding.Sequence, reference []uint32) error {
	if seq.Len() != len(reference) {
		return fmt.Errorf("encoded %d values, expected %d", seq.Len(), len(reference))
	}

	i := 0
	for v := range seq.All() {
		if v != reference[i] {
			return fmt.Errorf("value %d decoded as %d, expected %d", i, v, reference[i])
		}
		i++
	}

	if i != len(reference) {
		return fmt.Errorf("decoded %d values, expected %d", i, len(reference))
	}

	return nil
}

func report(out io.Writer, results []result, distinct, roaringSize int, compression format.CompressionType) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "codec\tpush ms\tdecode ms\tbytes\tbytes/value\tblob (%s)\t\n", compression)
	for _, r := range results {
		blobSize := "-"
		if r.blobSize > 0 {
			blobSize = fmt.Sprint(r.blobSize)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.3f\t%s\t\n",
			r.name, r.push.Milliseconds(), r.decode.Milliseconds(), r.size, perValue(r.size, distinct), blobSize)
	}
	fmt.Fprintf(tw, "roaring\t-\t-\t%d\t%.3f\t-\t\n", roaringSize, perValue(roaringSize, distinct))

	return tw.Flush()
}

func perValue(size, count int) float64 {
	if count == 0 {
		return 0
	}

	return float64(size) / float64(count)
}
