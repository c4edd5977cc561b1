package probe

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryInterceptor returns a gRPC UnaryServerInterceptor that logs every call
// and recovers from handler panics.
//
// Behaviour:
//   - Successful calls are logged at debug level with method and latency.
//   - Failed calls are logged at warn level with the status code.
//   - A panic in the handler is logged with its stack and returned to the
//     caller as codes.Internal.
func UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		start := time.Now()

		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(ctx, "grpc: handler panic",
					"method", info.FullMethod,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()),
				)
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}

			code := status.Code(err)
			attrs := []any{
				"method", info.FullMethod,
				"code", code.String(),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err != nil {
				slog.WarnContext(ctx, "grpc: call failed", append(attrs, "err", err)...)
				return
			}
			slog.DebugContext(ctx, "grpc: call", attrs...)
		}()

		return handler(ctx, req)
	}
}
