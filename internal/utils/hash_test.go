// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash_MatchesSHA256(t *testing.T) {
	data := []byte("texture|snapshot")
	want := sha256.Sum256(data)

	assert.Equal(t, want[:], Hash(data))
	assert.Equal(t, Hash(data), Hash(data), "pooled hasher must be reset between calls")
}

func TestContentHash(t *testing.T) {
	sum := sha256.Sum256([]byte("item"))

	assert.Equal(t, hex.EncodeToString(sum[:]), ContentHash("item"))
	assert.NotEqual(t, ContentHash("item"), ContentHash("item renamed"))
	assert.Len(t, ContentHash(""), 64)
}

func TestHash_Concurrent(t *testing.T) {
	want := ContentHash("concurrent")

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, ContentHash("concurrent"))
		}()
	}
	wg.Wait()
}
