// Package errors provides coded errors for pickupworld.
//
// Every layer returns *Error values carrying a Code, a user-facing message,
// an optional cause and optional metadata. Codes follow gRPC semantics so the
// handler layer can translate them without guessing.
//
// # Basic Usage
//
//	err := errors.NotFound("session not found")
//	err := errors.InvalidArgumentf("size must be >= %d, got %v", 2, size)
//
// Adding metadata:
//
//	err := errors.ResourceExhausted("no valid position for entity").
//	    WithMeta("kind", spec.Kind.String()).
//	    WithMeta("attempts", attempts)
//
// Wrapping errors:
//
//	if err := env.Reset(ctx); err != nil {
//	    return nil, errors.Wrap(err, "failed to reset session")
//	}
//
// # Error Codes By Layer
//
// Environment construction rejects bad sizes and counts with InvalidArgument.
// Random placement that cannot find a free spot is ResourceExhausted, an
// invalid supplied pose is FailedPrecondition, and a layout replay that no
// longer fits the room is Internal. Stepping an episode that has not been
// reset, or that already terminated, is FailedPrecondition.
//
// Repositories return NotFound and AlreadyExists. Handlers convert with
// ToGRPCError.
package errors
