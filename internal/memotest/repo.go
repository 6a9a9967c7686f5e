// Package memotest declares a repository cached by cachegen wrappers. The wrappers in
// repo_cachegen.go are the generator's output and are kept current by the oracle tests.
package memotest

import (
	"context"
	"fmt"

	"go.trai.ch/cachegen/pkg/memo"
)

// Repo loads users and counts how often it had to.
type Repo struct {
	cache memo.Cache
	Finds int
	Loads int
	Fail  error
}

// NewRepo creates a Repo caching through cache.
func NewRepo(cache memo.Cache) *Repo {
	return &Repo{cache: cache}
}

//cachegen:cache Find
func (r *Repo) find(id int) string {
	r.Finds++
	return fmt.Sprintf("user-%d", id)
}

// load returns nil for negative ids.
//
//cachegen:cache Load
func (r *Repo) load(ctx context.Context, id int) (*string, error) {
	r.Loads++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Fail != nil {
		return nil, r.Fail
	}
	if id < 0 {
		return nil, nil
	}
	s := fmt.Sprintf("user-%d", id)
	return &s, nil
}
