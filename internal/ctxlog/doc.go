// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a slog.Logger on a context.Context.
//
// The default logger prints human readable records to stderr, leaving stdout free for
// the data stream. The level comes from an environment variable named after the
// executable, so teeio reads TEEIO_LOG_LEVEL. Accepted values are DEBUG, INFO, WARN
// and ERROR; anything else means WARN.
package ctxlog
