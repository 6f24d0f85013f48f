// Package request defines the normalized record of an intercepted HTTP call.
//
// Every transport adapter (the wire-option callable, net/http, fasthttp)
// funnels its input through Normalize so that matchers only ever see one
// shape: lower-cased headers, a query map split off the URI, and the body
// decoded according to its Content-Type into JSON, form fields, multipart
// parts or raw content.
package request
