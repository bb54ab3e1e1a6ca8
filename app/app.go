// Package app wires configured backends into the services both binaries use.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"

	accountpkg "github.com/mikios34/choonpaan/account"
	accountsvc "github.com/mikios34/choonpaan/account/service"
	adminpkg "github.com/mikios34/choonpaan/admin"
	adminrepo "github.com/mikios34/choonpaan/admin/repository"
	adminsvc "github.com/mikios34/choonpaan/admin/service"
	"github.com/mikios34/choonpaan/auth"
	"github.com/mikios34/choonpaan/config"
	customerpkg "github.com/mikios34/choonpaan/customer"
	customerrepo "github.com/mikios34/choonpaan/customer/repository"
	customersvc "github.com/mikios34/choonpaan/customer/service"
	driverpkg "github.com/mikios34/choonpaan/driver"
	driverrepo "github.com/mikios34/choonpaan/driver/repository"
	driversvc "github.com/mikios34/choonpaan/driver/service"
	"github.com/mikios34/choonpaan/media"
	profilepkg "github.com/mikios34/choonpaan/profile"
	profilesvc "github.com/mikios34/choonpaan/profile/service"
	"github.com/mikios34/choonpaan/role"
	"github.com/mikios34/choonpaan/session"
	"github.com/mikios34/choonpaan/session/kvstore"
	"github.com/mikios34/choonpaan/store"
	"github.com/mikios34/choonpaan/store/repository"
)

// App holds the wired services. Close releases backend connections.
type App struct {
	Config config.Config

	Records  store.Repository
	Auth     *auth.Authenticator
	Resolver *role.Resolver
	KV       kvstore.Store
	// Sessions tracks the server-issued session scopes inside KV.
	Sessions *session.Registry

	Accounts  accountpkg.Service
	Profiles  profilepkg.Editor
	Customers customerpkg.CustomerService
	Drivers   driverpkg.DriverService
	Admins    adminpkg.AdminService

	// TokenVerifier checks Firebase ID tokens; nil unless a Firebase app is
	// configured.
	TokenVerifier *firebaseauth.Client

	closers []func() error
}

// Build validates cfg and connects every backend it selects.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{Config: cfg}
	if err := a.build(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) build(ctx context.Context) error {
	cfg := a.Config

	var fbApp *firebase.App
	if cfg.StoreBackend == config.StoreFirebase {
		var err error
		fbApp, err = auth.InitFirebaseApp(ctx, auth.FirebaseConfig{
			ProjectID:       cfg.FirebaseProjectID,
			DatabaseURL:     cfg.FirebaseDatabaseURL,
			CredentialsFile: cfg.CredentialsFile,
		})
		if err != nil {
			return fmt.Errorf("firebase init: %w", err)
		}
		verifier, err := fbApp.Auth(ctx)
		if err != nil {
			log.Printf("app: firebase auth client unavailable, token exchange disabled: %v", err)
		} else {
			a.TokenVerifier = verifier
		}
	}

	records, err := a.openRecords(ctx, fbApp)
	if err != nil {
		return err
	}
	a.Records = records

	provider, err := a.openIdentity(ctx)
	if err != nil {
		return err
	}
	a.Auth = auth.NewAuthenticator(provider)
	a.Resolver = role.NewResolver(records, role.Parallel(cfg.ResolveParallel))

	kv, err := a.openKV(ctx)
	if err != nil {
		return err
	}
	a.KV = kv
	a.Sessions = session.NewRegistry(kv, cfg.AccessTokenTTL)

	var uploader media.Uploader
	if cfg.UploadsEnabled() {
		c, err := media.NewCloudinary(media.CloudinaryConfig{
			BaseURL:      cfg.CloudinaryBaseURL,
			CloudName:    cfg.CloudinaryCloudName,
			UploadPreset: cfg.CloudinaryUploadPreset,
			Folder:       cfg.CloudinaryFolder,
		})
		if err != nil {
			return err
		}
		uploader = c
	}

	a.Accounts = accountsvc.NewAccountService(a.Auth, a.Resolver, records)
	a.Profiles = profilesvc.NewEditor(records, uploader)
	a.Customers = customersvc.NewCustomerService(customerrepo.NewStoreCustomerRepo(records))
	a.Drivers = driversvc.NewService(driverrepo.NewRepository(records))
	a.Admins = adminsvc.NewAdminService(adminrepo.NewStoreAdminRepo(records))

	log.Printf("app: store=%s identity=%s session=%s parallel=%v uploads=%v",
		cfg.StoreBackend, cfg.IdentityBackend, cfg.SessionBackend, cfg.ResolveParallel, uploader != nil)
	return nil
}

func (a *App) openRecords(ctx context.Context, fbApp *firebase.App) (store.Repository, error) {
	switch a.Config.StoreBackend {
	case config.StoreFirebase:
		client, err := fbApp.Database(ctx)
		if err != nil {
			return nil, fmt.Errorf("firebase database: %w", err)
		}
		return repository.NewFirebaseStore(client), nil
	case config.StorePostgres:
		db, err := repository.OpenPostgres(a.Config.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		a.closers = append(a.closers, func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
		return repository.NewGormStore(db), nil
	default:
		return repository.NewMemoryStore(), nil
	}
}

func (a *App) openIdentity(ctx context.Context) (auth.IdentityProvider, error) {
	if a.Config.IdentityBackend == config.IdentityFirebase {
		id, err := auth.NewFirebaseIdentity(ctx, a.Config.FirebaseAPIKey)
		if err != nil {
			return nil, fmt.Errorf("firebase identity: %w", err)
		}
		return id, nil
	}
	log.Printf("app: using local identity provider; accounts are lost on exit")
	return auth.NewLocalIdentity(), nil
}

func (a *App) openKV(ctx context.Context) (kvstore.Store, error) {
	cfg := a.Config
	switch cfg.SessionBackend {
	case config.SessionFile:
		return kvstore.NewFile(cfg.SessionPath), nil
	case config.SessionSQLite:
		s, err := kvstore.OpenSQLite(cfg.SessionPath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	case config.SessionRedis:
		client, err := kvstore.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return kvstore.NewRedis(client), nil
	default:
		return kvstore.NewMemory(), nil
	}
}

// DeviceSessions is the session manager of the local device.
func (a *App) DeviceSessions() *session.Manager {
	return session.NewManager(a.KV)
}

// ScopedSessions is the session manager for one server-issued session id.
func (a *App) ScopedSessions(sessionID string) *session.Manager {
	return a.Sessions.ScopedSessions(sessionID)
}

// Close releases backend connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
