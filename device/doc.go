// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package device provides the pseudonymous per-device voter identity.

A Provider reads TokenKey from a Storage and mints a UUIDv4 on first use:

	p := device.NewProvider(device.NewFileStorage(path), logger)
	token := p.Token()

Token never fails. When storage is missing or unreadable each call returns a
fresh token, so votes from that device are not deduplicated.

# Storage Backends

  - MemoryStorage: process-local, for tests and embedded use
  - FileStorage: JSON file written atomically with mode 0600 (pollctl)
  - CookieStorage: one HTTP request; X-Device-UUID header first, then the
    signed rp_device cookie
*/
package device
