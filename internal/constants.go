/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent = "courtbot/0.3.0 (+https://github.com/mikeb26/courtbot)"
	// default bucket for league snapshots and the web cache
	LeagueBucket = "bopmatic-courtbot-prod-league"
	// object key prefix under which the http cache lives
	WebCachePrefix = "webcache"
)
