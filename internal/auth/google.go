package auth

import (
	"context"
	"time"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	apperrors "stockroom/internal/errors"
)

// googleVerifyTimeout bounds the network round trip for key fetches inside
// the SDK; a hang must not stall the request.
const googleVerifyTimeout = 10 * time.Second

// GoogleIdentity is the verified subject extracted from a Google ID token.
type GoogleIdentity struct {
	UID   string
	Email string
}

// GoogleTokenVerifier validates a Google-issued ID token and extracts the
// stable subject id and verified email.
type GoogleTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

// GoogleVerifier verifies ID tokens through the Firebase Admin SDK, which
// fetches and caches Google's signing keys and checks audience and expiry.
type GoogleVerifier struct {
	client *firebaseauth.Client
}

// NewGoogleVerifier initializes the Firebase app from a service account key
// file. An empty credentialsFile falls back to application default
// credentials.
func NewGoogleVerifier(ctx context.Context, credentialsFile string) (*GoogleVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &GoogleVerifier{client: client}, nil
}

// Verify validates the token and returns its subject. Expired token, wrong
// audience, bad signature, and key-fetch failures all collapse into the same
// error; callers cannot distinguish why verification failed.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, googleVerifyTimeout)
	defer cancel()

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, apperrors.ErrInvalidGoogleToken
	}

	email, _ := token.Claims["email"].(string)
	return &GoogleIdentity{UID: token.UID, Email: email}, nil
}
