package spotify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/thanhpk/randstr"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	callbackAddress = "127.0.0.1:8080"
	callbackPath    = "/callback"
)

// Authenticate obtains an application token via the client
// credentials grant: enough for public tracks, albums and
// playlists, not for the user library
func Authenticate(ctx context.Context, clientID, clientSecret string) (*Client, error) {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := config.Token(ctx)
	if err != nil {
		return nil, err
	}
	return &Client{spotify.New(spotifyauth.New().Client(ctx, token))}, nil
}

// AuthenticateUser runs the authorization code flow over a
// short-lived local callback server, printing the URL the
// user has to open. It blocks until the callback lands or
// ctx is canceled.
func AuthenticateUser(ctx context.Context, clientID, clientSecret string, prompt func(url string)) (*Client, error) {
	var (
		authenticator = spotifyauth.New(
			spotifyauth.WithClientID(clientID),
			spotifyauth.WithClientSecret(clientSecret),
			spotifyauth.WithRedirectURL("http://"+callbackAddress+callbackPath),
			spotifyauth.WithScopes(
				spotifyauth.ScopeUserLibraryRead,
				spotifyauth.ScopePlaylistReadPrivate,
			),
		)
		state   = randstr.Hex(16)
		clients = make(chan *Client, 1)
		errs    = make(chan error, 1)
	)

	listener, err := net.Listen("tcp", callbackAddress)
	if err != nil {
		return nil, err
	}

	handler := http.NewServeMux()
	handler.HandleFunc(callbackPath, func(writer http.ResponseWriter, request *http.Request) {
		token, err := authenticator.Token(request.Context(), state, request)
		if err != nil {
			http.Error(writer, "authorization failed", http.StatusForbidden)
			errs <- err
			return
		}
		fmt.Fprintln(writer, "All set, you can close this window.")
		clients <- &Client{spotify.New(authenticator.Client(request.Context(), token))}
	})

	server := &http.Server{Handler: handler}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
	defer server.Close()

	if prompt != nil {
		prompt(authenticator.AuthURL(state))
	}

	select {
	case client := <-clients:
		return client, nil
	case err := <-errs:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
