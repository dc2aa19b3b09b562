// Package attr implements the attribute store behind a ribbon batch.
//
// A Store owns named float32 arrays (one per vertex attribute) and a single
// index array. Every write goes through a reuse-or-reallocate policy: data
// with the same total length as the registered array is copied into the
// existing storage, keeping the array's identity so GPU consumers can update
// their buffers in place; any other length replaces the array.
//
// Each write marks the touched array dirty and bumps its version. Consumers
// upload the dirty arrays and acknowledge with ClearDirty.
//
// A Store is not safe for concurrent use.
package attr
