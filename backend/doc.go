// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package backend opens the store stack described by a cliparse.StoreConfig.
package backend
