package app

import "go.trai.ch/cachegen/pkg/memo"

// Notes stores titled notes.
type Notes struct {
	cache memo.Cache
}

//cachegen:cache Title
func (n *Notes) title(memo string, sync int) string {
	return memo
}

//cachegen:cache body
func (n *Notes) body() string {
	return ""
}
