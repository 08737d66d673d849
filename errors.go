// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teeio

import "errors"

// ErrNegativeCount is returned by BufReader.Consume when asked to consume a negative number of bytes.
var ErrNegativeCount = errors.New("teeio: negative count")
