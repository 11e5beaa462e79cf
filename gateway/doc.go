// Package gateway implements a development stand-in for a Swarm bzz gateway.
//
// The gateway accepts tar archives on POST /bzz:/ and answers with the hex
// keccak-256 digest of the uploaded bytes, which serves as the content
// address. GET /bzz:/{address} returns a stored archive. Archives live in
// memory and are lost on restart.
//
// The gateway is not a Swarm node: addresses are plain digests of the archive,
// not Swarm manifest hashes. It exists so that the register and publish
// workflows can be exercised locally and in tests.
//
// # Endpoints
//
//	POST /bzz:/            Content-Type: application/x-tar, returns the address
//	GET  /bzz:/{address}   returns the stored archive
//	GET  /livez            liveness
//	GET  /readyz           readiness, 503 while draining
//	GET  /drain, /undrain  toggle readiness
package gateway
