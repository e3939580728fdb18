// Package session tracks who is signed in to the storefront. Flags live in
// the same KV store as the catalog and cart, so a login or logout in one view
// propagates through the usual change signals.
package session

import (
	"context"

	"github.com/teltechdev/teltech-backend/pkg/kv"
)

var (
	userKey  = kv.Key("session", "user")
	adminKey = kv.Key("session", "admin")
)

const flagSet = "true"

type Session struct {
	store *kv.Store
}

func New(store *kv.Store) *Session {
	return &Session{store: store}
}

// UserLoggedIn reports whether a shopper session flag is set.
func (s *Session) UserLoggedIn(ctx context.Context) bool {
	return s.store.ReadFlag(ctx, userKey) == flagSet
}

// AdminLoggedIn reports whether an admin session flag is set.
func (s *Session) AdminLoggedIn(ctx context.Context) bool {
	return s.store.ReadFlag(ctx, adminKey) == flagSet
}

func (s *Session) LoginUser(ctx context.Context) error {
	return s.store.WriteFlag(ctx, userKey, flagSet)
}

func (s *Session) LogoutUser(ctx context.Context) error {
	return s.store.DeleteFlag(ctx, userKey)
}

func (s *Session) LoginAdmin(ctx context.Context) error {
	return s.store.WriteFlag(ctx, adminKey, flagSet)
}

func (s *Session) LogoutAdmin(ctx context.Context) error {
	return s.store.DeleteFlag(ctx, adminKey)
}
