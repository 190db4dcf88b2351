// Copyright 2026 The quicklog Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cachepad provides cache-line padding helpers shared by the
// arena and the record queue, so producer-owned and consumer-owned
// cursors never fall on the same cache line.
package cachepad

// Line is padding sized to fill a typical 64-byte cache line after a
// preceding field. Insert between fields that are written by different
// goroutines to prevent false sharing.
type Line [64]byte
