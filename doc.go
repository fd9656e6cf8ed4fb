// Package qoipix implements a lossless, byte-oriented compressed format for
// RGBA pixel buffers.
//
// The body of a stream is a sequence of six operation kinds: runs of the
// previous pixel, backreferences into a 64-slot cache of recently seen
// pixels, two sizes of per-channel delta, and raw RGB/RGBA literals. Encoder
// and decoder both maintain the cache and a running reference pixel, and
// must mutate them identically pixel for pixel; that shared state is what
// makes one-byte backreferences possible.
//
// Transcoding an image is one synchronous pass with no internal parallelism.
// All state is owned by a single call, so independent images can be encoded
// or decoded concurrently from different goroutines.
package qoipix
