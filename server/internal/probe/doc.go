// Package probe serves the gRPC health service of the launchboard server.
//
// New() builds a grpc.Server exposing grpc.health.v1.Health. Every service
// starts NOT_SERVING; SetServing(true) flips the overall status and the
// ServiceName entry once the dataset is loaded. Drain() marks everything
// NOT_SERVING ahead of shutdown so orchestrators stop routing traffic, and
// Stop() drains then stops the server gracefully.
//
// Unary calls pass through UnaryInterceptor, which logs each call and turns
// handler panics into codes.Internal.
package probe
