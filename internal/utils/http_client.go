// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around resty.Client. It embeds *resty.Client to
// expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient(180 * time.Second)
//	resp, err := client.R().Get("https://example.com/cap/item/" + id)
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client with the given per-request
// timeout. A non-positive timeout leaves resty's default (no timeout).
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
