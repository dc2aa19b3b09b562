//go:build !ribbondebug

package ribbon

// debugInvariants enables index invariant checks during every build.
// Build with -tags ribbondebug to turn them on.
const debugInvariants = false
