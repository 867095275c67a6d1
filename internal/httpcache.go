/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/courtbot/s3store"
)

// NewCachedHttpClient returns an http.Client that caches roster pages in the
// given S3 bucket. If the bucket is unreachable it falls back to
// http.DefaultClient. Origin cache headers are rewritten to enforce maxAge.
func NewCachedHttpClient(ctx context.Context, bucket string,
	maxAge time.Duration) *http.Client {

	store := s3store.New(ctx, bucket, WebCachePrefix, true, true)
	err := store.Init()
	if err != nil {
		log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to uncached http", err)
		return http.DefaultClient
	}

	return &http.Client{Transport: newCachingTransport(store, maxAge,
		http.DefaultTransport)}
}

func newCachingTransport(cache httpcache.Cache, maxAge time.Duration,
	wrapped http.RoundTripper) *httpcache.Transport {

	hc := httpcache.NewTransport(cache)
	// roster pages are usually served no-cache; override so the TTL applies
	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: wrapped,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", UserAgent)
			}
		},
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}
	return hc
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don’t stomp on the caller’s original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
