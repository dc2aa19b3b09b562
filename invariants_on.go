//go:build ribbondebug

package ribbon

// debugInvariants enables index invariant checks during every build.
const debugInvariants = true
