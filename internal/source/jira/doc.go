// Package jira describes the Jira record kinds this integration maps:
// which kinds exist, the upstream fields a mapping can rely on, and the
// webhook events the source emits for them.
//
// Fetching these records (REST client, auth, pagination, rate limits) is the
// host pipeline's job; this package only carries source metadata and sample
// records for validation and dry runs.
package jira
