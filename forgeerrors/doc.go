// Package forgeerrors provides structured error types for the oasforge
// library.
//
// Import path: github.com/erraggy/oasforge/forgeerrors
//
// The package enables programmatic error handling via [errors.Is] and
// [errors.As]. Each error type has a corresponding sentinel:
//
//   - [EncodeError] / [ErrEncode], [ErrUnsupportedVersion]: version-aware
//     serialization failures — the only fatal category in the core
//   - [CollisionError] / [ErrCollision]: registry naming collisions,
//     surfaced as warnings
//   - [FragmentError] / [ErrFragment]: same-tier fragment contradictions,
//     absorbed locally
//   - [ConfigError] / [ErrConfig]: invalid options
//
// Check error category with errors.Is():
//
//	doc, err := encoder.Encode(node, version)
//	if errors.Is(err, forgeerrors.ErrUnsupportedVersion) {
//	    // caller asked for an encoding family that does not exist
//	}
package forgeerrors
