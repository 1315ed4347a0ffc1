// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool keeps SHA-256 instances around; item hashing runs for every
// item of every fetch reply.
var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// Hash computes a SHA-256 digest of data using a pooled hasher.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// ContentHash returns the hex-encoded SHA-256 digest of content. The tree
// store uses it to tell a re-received item from a changed one.
func ContentHash(content string) string {
	return hex.EncodeToString(Hash([]byte(content)))
}
