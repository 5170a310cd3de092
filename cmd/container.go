package cmd

import (
	"github.com/forkops/tagsync/internal/config"
	"github.com/forkops/tagsync/internal/service"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.

type container struct {
	cfg *config.Config

	fs       afero.Fs
	patchSvc service.PatchService
	hookSvc  service.HookService
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &container{
		cfg:      cfg,
		fs:       afero.NewOsFs(),
		patchSvc: service.NewPatchService(),
		hookSvc:  service.NewHookService(),
	}, nil
}

// logger builds the run logger. The debug flag switches to a development
// configuration with human-readable output.
func (c *container) logger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	rootCmd.AddCommand(NewSyncCmd(c))
	rootCmd.AddCommand(newVersionCmd())
	return nil
}
