/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gregjones/httpcache"
)

func TestCachingTransportOverridesNoCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Header.Get("User-Agent") != UserAgent {
			t.Errorf("User-Agent = %q; want %q", r.Header.Get("User-Agent"), UserAgent)
		}
		w.Header().Set("Cache-Control", "no-cache, no-store")
		w.Header().Set("Pragma", "no-cache")
		fmt.Fprint(w, "<table></table>")
	}))
	defer srv.Close()

	client := &http.Client{Transport: newCachingTransport(httpcache.NewMemoryCache(),
		5*time.Minute, http.DefaultTransport)}

	for i := 0; i < 3; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil || len(data) == 0 {
			t.Fatalf("get %d: empty body (%v)", i, err)
		}
		if i > 0 && resp.Header.Get("X-From-Cache") != "1" {
			t.Errorf("get %d: object not cached", i)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("origin hits = %d; want 1", n)
	}
}
