// Package directions fetches and parses responses from the Google Directions
// web service.
//
// The Client issues a single GET per Query and returns a typed Response. The
// JSON body is decoded into wire structs, checked with struct tags and only
// then converted, so a missing coordinate or polyline is reported as a
// MalformedResponseError instead of silently becoming a zero value.
//
// Failures are typed:
//   - TransportError: network failure or non-2xx HTTP status
//   - MalformedResponseError: body is not the expected document
//   - APIError: the service answered with a non-OK status
//   - MissingRouteError: the requested route index does not exist
package directions
