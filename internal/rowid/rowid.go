// Package rowid derives deterministic identities for comment rows.
//
// Identity is a UUIDv5 chain: a fixed root namespace for the service, a
// per-video namespace under the root, and a comment UUID under the video
// namespace. The same (videoId, text) pair always maps to the same UUID,
// so row identities survive restarts and dataset reloads.
package rowid

import (
	"github.com/google/uuid"
)

var nsRoot = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("redline.thirdcoast.systems"))

// NamespaceForVideo returns the deterministic namespace UUID for a video id.
//
// The id is used exactly as given. Callers must not normalize it: the
// persisted join key is the raw dataset value.
func NamespaceForVideo(videoID string) uuid.UUID {
	return uuid.NewSHA1(nsRoot, []byte(videoID))
}

// CommentUUID returns the deterministic identity of a (videoId, text) pair.
//
// The name string is exactly "{text}"; the video is already scoped by the namespace.
func CommentUUID(videoID string, text string) uuid.UUID {
	return uuid.NewSHA1(NamespaceForVideo(videoID), []byte(text))
}
