// Package http implements the HTTP transport of the payroll service.
//
// It exposes route wiring, request handlers, and middleware for the operator
// API: run coordination, item enrollment, range claims, and decryption
// requests, plus the gateway callback. Cross-cutting concerns such as
// authentication, request tracing, access logging, response compression, and
// body integrity checks are handled here before requests reach the service
// layer. Handlers only ever see plaintext metadata and ciphertext handles;
// amounts stay inside the engine.
package http
