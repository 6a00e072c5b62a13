// Package giftwatch provides a local, CLI-based price tracker for gift ideas.
// It fetches product pages, extracts the current price from structured
// data, meta tags or visible text, records price observations and
// evaluates price alerts.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package giftwatch
