package app

import (
	"context"

	"go.trai.ch/cachegen/pkg/memo"
)

// Base carries the shared cache.
type Base struct {
	Cache memo.Cache
}

// User is a loaded user.
type User struct {
	ID   int
	Name string
}

// Users loads users.
type Users struct {
	Base
	store  *memo.Store
	prefix string
}

//cachegen:cache GetUser nokey=trace
func (u *Users) getUser(ctx context.Context, id int, trace string) (*User, error) {
	return &User{ID: id, Name: u.prefix + trace}, nil
}

//cachegen:cache name=Count hooks noevict
func (u Users) count(_ context.Context) int {
	return 0
}

//cachegen:cache bogus=1
func (u *Users) broken() int {
	return 1
}

//cachegen:cache Helper
func helper(id int) int {
	return id
}

//cachegen:cache Misplaced
var defaultPrefix = "user:"

func userKey(id int) string {
	return defaultPrefix + string(rune(id))
}
