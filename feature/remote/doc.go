// Package remote mirrors the unit directory against an object storage bucket.
//
// Teams working on the same game share their unit files through a bucket.
// A push brings the bucket up to date with the local directory, a pull
// does the reverse. Both directions first build a plan which the sync
// command prints and optionally confirms before anything is applied.
//
// # Change Detection
//
// Files are compared by size first. Equally sized files fall back to the
// content hash when the remote ETag carries one, multipart uploads do not
// and count as unchanged. Deletions are never planned unless explicitly
// requested.
package remote
