// Package pkg provides the core libraries for spritepack atlas generation.
//
// # Overview
//
// Spritepack packs a directory of images into a single atlas texture plus a
// placement descriptor. The pkg directory is organized into four main areas:
//
//  1. [sprite], [pack], [compose] - Domain logic (trim geometry, rectangle
//     packing, pixel compositing)
//  2. [emit], [source] - Output (descriptor rendering, file I/O)
//  3. [optimize], [cache], [httputil] - External collaborators (post-optimizer
//     client with retry and memoization)
//  4. [pipeline] - Orchestration (load → pack → compose → emit)
//
// # Architecture
//
// The typical data flow through spritepack:
//
//	Source directory
//	         ↓
//	    [source] package (decode to RGBA)
//	         ↓
//	    [sprite] package (scale + trim geometry)
//	         ↓
//	    [pack] package (sort, pack, resolve constraints)
//	         ↓
//	    [compose] + [emit] packages (atlas PNG + descriptors)
//
// # Quick Start
//
// Pack a directory and emit a JSON descriptor:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/spritepack/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    SrcDir:  "./sprites",
//	    OutDir:  "./out",
//	    Formats: []string{"json"},
//	})
package pkg
