package main

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/turbojson/turbojson"
)

// cmdCorpus replays a zstd-compressed, newline-delimited JSON corpus
// through Decode then Encode, reporting aggregate throughput. A single
// CLI invocation operating on one document cannot exercise the
// "documents per second" framing of the codec's performance goals; this
// is the CLI's substitute for a benchmark harness.
func cmdCorpus(fl flags, stdout io.Writer, stderr io.Writer) int {
	f, err := os.Open(fl.corpus)
	if err != nil {
		return writeErrorAndReturn(stderr, 10, "error: opening corpus %q: %v\n", fl.corpus, err)
	}
	defer func() { _ = f.Close() }()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return writeErrorAndReturn(stderr, 10, "error: opening zstd stream: %v\n", err)
	}
	defer zr.Close()

	scanner := bufio.NewScanner(zr)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var docs int
	var decodeTotal, encodeTotal time.Duration
	var failures int

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		doc := append([]byte(nil), line...)

		start := time.Now()
		tree, err := turbojson.Decode(doc)
		decodeTotal += time.Since(start)
		if err != nil {
			failures++
			continue
		}

		start = time.Now()
		if _, err := turbojson.Encode(tree, nil, fl.option); err != nil {
			failures++
			continue
		}
		encodeTotal += time.Since(start)

		docs++
	}
	if err := scanner.Err(); err != nil {
		return writeErrorAndReturn(stderr, 10, "error: reading corpus: %v\n", err)
	}

	_ = writef(stdout, "documents: %d\n", docs)
	_ = writef(stdout, "failures: %d\n", failures)
	if docs > 0 {
		_ = writef(stdout, "decode: %s total, %s/doc\n", decodeTotal, decodeTotal/time.Duration(docs))
		_ = writef(stdout, "encode: %s total, %s/doc\n", encodeTotal, encodeTotal/time.Duration(docs))
	}
	return 0
}
