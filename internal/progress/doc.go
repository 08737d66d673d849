// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress reports the progress of plan jobs. Jobs emit events while they
// run and listeners, such as the logger of the run command, receive them on their
// own goroutine.
package progress
