package auth

import (
	"context"
	"errors"
	"path/filepath"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// FirebaseConfig names the Firebase project and service account.
type FirebaseConfig struct {
	ProjectID       string
	DatabaseURL     string
	CredentialsFile string
}

// InitFirebaseApp initializes a Firebase Admin SDK app for the realtime
// database and ID token verification. An empty CredentialsFile falls back
// to a single "*-firebase-adminsdk-*.json" in the working directory, then
// to application default credentials.
func InitFirebaseApp(ctx context.Context, cfg FirebaseConfig) (*firebase.App, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("firebase database url is required")
	}
	cred := cfg.CredentialsFile
	if cred == "" {
		matches, _ := filepath.Glob("*-firebase-adminsdk-*.json")
		switch len(matches) {
		case 0:
		case 1:
			cred = matches[0]
		default:
			return nil, errors.New("multiple firebase service account json files found in working directory; set GOOGLE_APPLICATION_CREDENTIALS explicitly")
		}
	}
	var opts []option.ClientOption
	if cred != "" {
		opts = append(opts, option.WithCredentialsFile(cred))
	}
	return firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   cfg.ProjectID,
		DatabaseURL: cfg.DatabaseURL,
	}, opts...)
}
