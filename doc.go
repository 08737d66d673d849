// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teeio provides stream duplication wrappers. A tee sits between a caller
// and an underlying stream and copies every byte that passes through it to a second
// destination, the mirror.
//
// The wrappers are built on the smallest capability set they need (Read for readers,
// Peek and Discard for buffered readers, Write for writers) and never embed the
// wrapped stream, so an optimised method of the underlying stream can not bypass the
// mirror. The conveniences of the io package (io.ReadFull, io.ReadAll, io.Copy,
// io.WriteString) work through those primitives.
//
// # Errors
//
// Errors from the source, primary and mirror streams are returned unchanged. When the
// mirror fails after the source or primary already succeeded, the call reports the
// mirror's error together with the number of bytes that were delivered:
//
//   - a Reader returns n > 0 and the mirror error. The n bytes are in the caller's
//     buffer, as with any io.Reader that returns data and an error together.
//   - a Writer returns n > 0 and the mirror error. The primary already holds those n bytes.
//
// A failed call does not poison the wrapper. Each call stands on its own.
//
// # Ownership
//
// A tee owns the stream it wraps. Close closes both the wrapped stream and the mirror
// when they implement io.Closer. Pass a mirror through Borrow to keep it open when the
// tee is closed, for example when several tees share one log.
//
// Tees hold no locks. A tee must not be used by more than one goroutine at a time, and
// a borrowed mirror shared with other code must be serialised by the caller.
package teeio
