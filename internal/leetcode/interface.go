package leetcode

import "context"

// ClientInterface defines the profile lookup operation.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	FetchProfile(ctx context.Context, username string) (*Profile, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
