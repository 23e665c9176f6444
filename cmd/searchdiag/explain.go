package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const explain206Text = `HTTP 206 PARTIAL CONTENT - ANALYSIS

A 206 response means the server returned only part of the requested
resource. Search APIs should never do this for a document query, so a 206
on a search call is always worth investigating.

COMMON CAUSES

1. Range header issues
   - The client (or an HTTP library underneath it) is sending Range headers
   - The server interprets the request as a partial content request
   - Some HTTP adapters and middlewares inject Range headers silently

2. API version compatibility
   - Older or preview API versions can mishandle semantic features
   - Semantic ranking options on an API version that predates them

3. Query complexity
   - Large or complex queries triggering a partial response
   - High k values on vectorized queries

4. Network and proxy interference
   - Intermediate proxies modifying headers
   - Load balancers with range request handling
   - CDN or caching layer interference

SUGGESTED FIXES

1. Pin a stable API version and retest
2. Simplify the query: drop semantic features first, then vector options,
   and confirm basic text search works on its own
3. Verify no proxy is injecting Range headers; test from another network
4. Update the client library and check for HTTP adapter conflicts

The run command exercises exactly this progression: basic, semantic,
filtered semantic, then hybrid strategies, so the summary shows which
feature tier starts failing.`

func explain206Command(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, explain206Text)
	return nil
}
