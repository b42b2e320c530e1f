package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/five82/crate/internal/state"
	"github.com/five82/crate/internal/vinylhound"
)

// ErrNotSignedIn is returned by actions that need a session.
var ErrNotSignedIn = errors.New("not signed in")

var errNoToken = errors.New("auth response did not include a token")

// Login signs in, stores the session and loads the user's album interactions.
// The session is kept in memory even if persisting it fails; that error is
// still returned.
func (r *Router) Login(ctx context.Context, creds vinylhound.Credentials) error {
	return r.authenticate(ctx, creds, r.backend.Login, "Welcome back, %s.")
}

// Signup registers and signs in.
func (r *Router) Signup(ctx context.Context, creds vinylhound.Credentials) error {
	return r.authenticate(ctx, creds, r.backend.Signup, "Welcome, %s.")
}

func (r *Router) authenticate(ctx context.Context, creds vinylhound.Credentials,
	call func(context.Context, vinylhound.Credentials) (vinylhound.AuthResult, error), greeting string) error {
	res, err := call(ctx, creds)
	if err == nil && res.Token == "" {
		err = errNoToken
	}
	if err != nil {
		r.store.SetMessage(errorText(err, "Unable to sign in."), state.MessageError)
		return err
	}

	persistErr := r.session.Login(res.Token, res.Username)
	if persistErr != nil {
		r.log.WithError(persistErr).Warn("session not persisted")
	}
	r.store.SetMessage(fmt.Sprintf(greeting, res.Username), state.MessageSuccess)
	r.LoadInteractions(ctx)
	r.loadContent(ctx, nil)
	return persistErr
}

// Logout drops the session and everything loaded on its behalf.
func (r *Router) Logout(ctx context.Context) error {
	err := r.session.Logout()
	r.ForgetUser()
	r.store.SetMessage("Signed out.", state.MessageInfo)
	r.Navigate(ctx, PathProfile)
	return err
}

// SetFavorite writes the favorite flag for an album. The stored rating is left
// alone.
func (r *Router) SetFavorite(ctx context.Context, albumID string, favorite bool) error {
	token := r.session.Token()
	if token == "" {
		r.store.SetMessage(GuardMessage, state.MessageInfo)
		return ErrNotSignedIn
	}
	if _, err := r.backend.SetAlbumFavorite(ctx, token, albumID, favorite); err != nil {
		r.store.SetMessage(errorText(err, "Unable to update favorite."), state.MessageError)
		return err
	}
	r.drop(state.AreaInteractions)
	r.store.UpdateInteraction(albumID, func(i *state.Interaction) { i.Favorite = favorite })
	return nil
}

// Rate writes the rating for an album; nil clears it. The favorite flag is
// left alone.
func (r *Router) Rate(ctx context.Context, albumID string, rating *int) error {
	token := r.session.Token()
	if token == "" {
		r.store.SetMessage(GuardMessage, state.MessageInfo)
		return ErrNotSignedIn
	}
	if _, err := r.backend.RateAlbum(ctx, token, albumID, rating); err != nil {
		r.store.SetMessage(errorText(err, "Unable to save rating."), state.MessageError)
		return err
	}
	r.drop(state.AreaInteractions)
	r.store.UpdateInteraction(albumID, func(i *state.Interaction) {
		if rating == nil {
			i.Rating = nil
			return
		}
		v := *rating
		i.Rating = &v
	})
	return nil
}

// ForgetUser clears the signed-in user's interactions and content, along with
// any load of them still in flight.
func (r *Router) ForgetUser() {
	r.drop(state.AreaInteractions)
	r.drop(state.AreaContent)
	r.store.ResetInteractions()
	r.store.SetContent(nil)
}

// drop discards any load in flight for area so its result never reaches the
// store.
func (r *Router) drop(area state.Area) {
	op := r.ops[area]
	gen := op.invalidate()
	op.commit(gen, func() { r.store.Idle(area) })
}
