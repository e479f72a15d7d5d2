// Command roster lists contacts and manages a profile photo from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/roster/internal/adapters/driven/config/env"
	"github.com/custodia-labs/roster/internal/adapters/driven/config/file"
	"github.com/custodia-labs/roster/internal/adapters/driven/contacts/addressbook"
	"github.com/custodia-labs/roster/internal/adapters/driven/contacts/google"
	"github.com/custodia-labs/roster/internal/adapters/driven/imaging"
	"github.com/custodia-labs/roster/internal/adapters/driven/permission"
	"github.com/custodia-labs/roster/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/roster/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/roster/internal/adapters/driving/cli"
	"github.com/custodia-labs/roster/internal/adapters/driving/oauth"
	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
	"github.com/custodia-labs/roster/internal/core/services"
	"github.com/custodia-labs/roster/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	app, err := wire(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer app.close()

	if err := cli.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

type application struct {
	profile *services.ProfileService
	store   *sqlite.Store
}

func (a *application) close() {
	if err := a.profile.Close(); err != nil {
		logger.Error("closing profile: %v", err)
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logger.Error("closing storage: %v", err)
		}
	}
}

// wire builds the adapters and services from configuration and hands them
// to the command tree.
func wire(ctx context.Context) (*application, error) {
	vars, err := env.Load()
	if err != nil {
		return nil, err
	}
	if vars.Verbose {
		logger.SetVerbose(true)
	}

	// ROSTER_HOME stands in for the user's home directory.
	home := vars.Home
	if home == "" {
		if home, err = os.UserHomeDir(); err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
	}

	configStore, err := file.NewConfigStore(filepath.Join(home, ".roster"))
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, env.NewOverrides(vars), home)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	app := &application{}
	var kv driven.KeyValueStore
	switch settings.Storage {
	case domain.StorageMemory:
		kv = memory.NewKeyValueStore()
	case domain.StorageSQLite:
		store, err := sqlite.NewStore(settings.DataDir)
		if err != nil {
			return nil, fmt.Errorf("opening storage: %w", err)
		}
		app.store = store
		kv = store.KeyValueStore()
	}

	permissions := permission.NewService(configStore, permission.NewTerminalPrompter())

	library := imaging.NewLibraryPicker(settings.Library.Dir, imaging.NewPromptChooser(os.Stdin, os.Stderr))
	camera := imaging.NewCamera(settings.Camera.InboxDir, settings.Camera.Command)
	acquirer := imaging.NewAcquirer(library, camera)

	app.profile = services.NewProfileService(permissions, acquirer, kv)
	contactService := services.NewContactService(permissions, contactStore(ctx, settings))

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Contacts: contactService,
		Profile:  app.profile,
		Settings: settingsService,
	})
	cli.SetChoosers(cli.ChooserConfig{
		Set: library.SetChooser,
		File: func(path string) driven.ImageChooser {
			return imaging.NewFileChooser(path)
		},
	})

	cli.SetGoogleLogin(googleLogin(settingsService))

	return app, nil
}

// googleLogin returns the sign-in flow for the configured Google client.
func googleLogin(settings *services.SettingsService) cli.LoginFunc {
	return func(ctx context.Context, notify func(string)) (string, error) {
		current, err := settings.Get()
		if err != nil {
			return "", err
		}
		if current.Contacts.Google.ClientID == "" {
			return "", fmt.Errorf("%w: set contacts.google.client_id first", domain.ErrInvalidInput)
		}

		token, err := oauth.Login(ctx, google.OAuthConfig(current.Contacts.Google), oauth.LoginOptions{Notify: notify})
		if err != nil {
			return "", err
		}
		return token.RefreshToken, nil
	}
}

// contactStore returns the configured contact source. A Google source that
// cannot be built is logged and left nil so other commands still run.
func contactStore(ctx context.Context, settings *domain.AppSettings) driven.ContactStore {
	switch settings.Contacts.Source {
	case domain.ContactsGoogle:
		store, err := google.NewStore(ctx, settings.Contacts.Google)
		if err != nil {
			logger.Warn("google contacts unavailable: %v", err)
			return nil
		}
		return store
	default:
		return addressbook.NewStore(settings.Contacts.AddressBookPath)
	}
}
