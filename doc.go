// Package bamsift splits a BAM alignment stream across multiple outputs
// keyed by read name.
//
// Each output is driven by a read list: a text source with one read name
// per line. A record goes to the first list that contains its query name,
// and the name is consumed on match, so overlapping lists express
// precedence and duplicate query names cascade to lower-priority lists.
// Records matching no list are dropped and counted. After the stream is
// consumed, every bucket reports the reads it requested but never saw.
//
// # Quick Start
//
//	s := bamsift.New(
//	    bamsift.WithThreads(16),
//	    bamsift.WithLogLevel(slog.LevelInfo),
//	)
//	summary, err := s.Split(ctx, "sample.bam", []string{"tumor.txt", "normal.txt"})
//
// This writes tumor.bam and normal.bam next to their read lists, sharing
// sample.bam's header, each holding the routed subset in original order.
//
// # Sources
//
// Inputs and outputs go through the source.Store abstraction. The default
// is the local file system; source/s3 and source/minio run the same split
// against object storage:
//
//	store, _ := s3.New(ctx, "my-bucket", "runs/2024/")
//	s := bamsift.New(bamsift.WithStore(store))
//
// Read lists may be compressed (.gz, .zst, .lz4); they are decompressed
// transparently by extension.
//
// # Failure Model
//
// Every error is fatal to the whole run: an unreadable source aborts before
// any output is created, and a decode or write failure aborts mid-run,
// leaving outputs that must not be treated as authoritative. There is no
// partial-success mode; a failed run is retried from scratch.
package bamsift
