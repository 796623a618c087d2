// Package client talks to the remote Fortune Service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface): the member
//     login exchange and one raw fetch per fortune endpoint. Bodies are
//     returned unparsed; mapping onto models is the adapter package's job.
//  2. An HTTP implementation (see HTTPClient) that rate limits outbound
//     requests, tags each one with an X-Request-ID and maps transport and
//     status failures to sentinel errors.
//
// # Error Handling
//
// Callers match failures with errors.Is: ErrUnavailable, ErrBadStatus,
// ErrUnauthorized.
//
// HTTPClient is safe for concurrent use. Every call honors ctx.
package client
