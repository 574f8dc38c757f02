// Package pipeline wires the codec and container packages to the
// filesystem: single-file compress/decompress, and a directory
// pipeline that fans compression out across a worker pool and
// fans the results back in for a single sequential archive write.
//
// The original C++ implementation duplicates this fan-out/fan-in logic
// once per codec (huffman.cpp, lzw.cpp); Format collapses that
// duplication into one generic engine instantiated per codec, since Go
// generics can express what the original's per-TU code generation
// couldn't.
package pipeline

import (
	"fmt"
	"io"

	"github.com/julianvb03/GESA/internal/atomicfile"
	"github.com/julianvb03/GESA/internal/fsadapter"
	"github.com/julianvb03/GESA/internal/logging"
	"github.com/julianvb03/GESA/internal/metrics"
	"github.com/julianvb03/GESA/internal/progress"
	"github.com/julianvb03/GESA/internal/workerpool"
)

// Entry is one framed file: its root-relative path plus its codec
// metadata and payload.
type Entry[M any, P any] struct {
	RelativePath string
	Metadata     M
	Payload      P
}

// Format binds a codec (Huffman or LZW) to its container framing so
// the fan-out/fan-in logic below never needs to know which one it's
// driving.
type Format[M any, P any] struct {
	Name string

	Encode func(input []byte) (M, P, error)
	Decode func(metadata M, payload P) ([]byte, error)

	OriginalSize func(metadata M) uint64

	WriteFile          func(w io.Writer, metadata M, payload P) error
	ReadFile           func(r io.Reader) (M, P, error)
	WriteArchiveHeader func(w io.Writer, fileCount uint32) error
	WriteArchiveEntry  func(w io.Writer, entry Entry[M, P]) error
	ReadArchive        func(r io.Reader) ([]Entry[M, P], error)
}

// CompressFile reads source whole, encodes it, and writes a
// single-file framed payload to destination.
func CompressFile[M any, P any](format Format[M, P], source, destination string) error {
	input, err := fsadapter.ReadFile(source)
	if err != nil {
		return err
	}

	metadata, payload, err := format.Encode(input)
	if err != nil {
		logging.Logger.Errorf("pipeline: encode %s failed: %s", source, err)
		return fmt.Errorf("pipeline: encode %s: %w", source, err)
	}
	metrics.RecordCodecInvocation(format.Name, "encode", format.OriginalSize(metadata))
	progress.AddBytes(format.OriginalSize(metadata))

	logging.Logger.Debugf("pipeline: writing %s container to %s", format.Name, destination)
	return atomicfile.Write(destination, func(w io.Writer) error {
		return format.WriteFile(w, metadata, payload)
	})
}

// DecompressFile reads and validates the single-file header at
// source, decodes the payload, and writes the plaintext to
// destination.
func DecompressFile[M any, P any](format Format[M, P], source, destination string) error {
	f, err := fsadapter.OpenFile(source)
	if err != nil {
		return err
	}
	defer f.Close()

	metadata, payload, err := format.ReadFile(f)
	if err != nil {
		return fmt.Errorf("pipeline: read header %s: %w", source, err)
	}

	output, err := format.Decode(metadata, payload)
	if err != nil {
		logging.Logger.Errorf("pipeline: decode %s failed: %s", source, err)
		return fmt.Errorf("pipeline: decode %s: %w", source, err)
	}
	metrics.RecordCodecInvocation(format.Name, "decode", format.OriginalSize(metadata))
	progress.AddBytes(format.OriginalSize(metadata))

	return fsadapter.WriteFile(destination, output)
}

// CompressDirectory enumerates sourceDirectory recursively, encodes
// every regular file across a bounded worker pool, and writes the
// results as a single archive at destinationArchive once every task
// has completed (the fan-in barrier). threadCount of 0 uses the
// pool's default sizing.
func CompressDirectory[M any, P any](format Format[M, P], sourceDirectory, destinationArchive string, threadCount int) error {
	descriptors, err := fsadapter.EnumerateFiles(sourceDirectory)
	if err != nil {
		return err
	}
	logging.Logger.Infof("pipeline: compressing %d file(s) from %s with %s", len(descriptors), sourceDirectory, format.Name)

	entries := make([]Entry[M, P], len(descriptors))
	if len(descriptors) > 0 {
		pool := workerpool.New(threadCount)
		futures := make([]*workerpool.Future[Entry[M, P]], len(descriptors))

		for i, descriptor := range descriptors {
			descriptor := descriptor
			futures[i] = workerpool.Submit(pool, func() (Entry[M, P], error) {
				input, err := fsadapter.ReadFile(descriptor.AbsolutePath)
				if err != nil {
					return Entry[M, P]{}, err
				}
				metadata, payload, err := format.Encode(input)
				if err != nil {
					return Entry[M, P]{}, fmt.Errorf("pipeline: encode %s: %w", descriptor.RelativePath, err)
				}
				metrics.RecordCodecInvocation(format.Name, "encode", format.OriginalSize(metadata))
				progress.AddBytes(format.OriginalSize(metadata))
				return Entry[M, P]{RelativePath: descriptor.RelativePath, Metadata: metadata, Payload: payload}, nil
			})
		}

		var firstErr error
		for i, future := range futures {
			entry, err := future.Get()
			if err != nil {
				logging.Logger.Errorf("pipeline: encode task for %s failed: %s", descriptors[i].RelativePath, err)
				if firstErr == nil {
					firstErr = err
				}
			}
			entries[i] = entry
		}
		pool.Close()

		if firstErr != nil {
			return firstErr
		}
	}

	logging.Logger.Debugf("pipeline: writing %s archive to %s (%d entries)", format.Name, destinationArchive, len(entries))
	return atomicfile.Write(destinationArchive, func(w io.Writer) error {
		if err := format.WriteArchiveHeader(w, uint32(len(entries))); err != nil {
			return err
		}
		for _, entry := range entries {
			if err := format.WriteArchiveEntry(w, entry); err != nil {
				return err
			}
		}
		return nil
	})
}

// DecompressArchive reads and validates sourceArchive, ensures
// destinationDirectory exists, then decodes and writes every entry
// across a bounded worker pool. threadCount of 0 uses the pool's
// default sizing. An empty archive is valid and produces no files.
func DecompressArchive[M any, P any](format Format[M, P], sourceArchive, destinationDirectory string, threadCount int) error {
	f, err := fsadapter.OpenFile(sourceArchive)
	if err != nil {
		return err
	}
	entries, err := format.ReadArchive(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("pipeline: read archive %s: %w", sourceArchive, err)
	}
	logging.Logger.Infof("pipeline: decompressing %d entry(ies) from %s into %s", len(entries), sourceArchive, destinationDirectory)

	if err := fsadapter.EnsureDir(destinationDirectory); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	pool := workerpool.New(threadCount)
	futures := make([]*workerpool.Future[struct{}], len(entries))

	for i, entry := range entries {
		entry := entry
		futures[i] = workerpool.Submit(pool, func() (struct{}, error) {
			output, err := format.Decode(entry.Metadata, entry.Payload)
			if err != nil {
				return struct{}{}, fmt.Errorf("pipeline: decode %s: %w", entry.RelativePath, err)
			}
			metrics.RecordCodecInvocation(format.Name, "decode", format.OriginalSize(entry.Metadata))
			progress.AddBytes(format.OriginalSize(entry.Metadata))

			destPath := fsadapter.JoinDestination(destinationDirectory, entry.RelativePath)
			return struct{}{}, fsadapter.WriteFile(destPath, output)
		})
	}

	var firstErr error
	for i, future := range futures {
		if _, err := future.Get(); err != nil {
			logging.Logger.Errorf("pipeline: decode task for %s failed: %s", entries[i].RelativePath, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	pool.Close()

	return firstErr
}
