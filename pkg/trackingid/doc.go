// Package trackingid propagates the Tracking-Id correlation header
// through the request context and onto every outbound service call.
package trackingid
