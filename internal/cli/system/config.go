package system

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/burnoutguard/internal/cli"
	"github.com/julianstephens/burnoutguard/internal/utils"
)

type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration." default:"1"`
	Path ConfigPathCmd `cmd:"" help:"Print the configuration file path."`
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	if ctx.Config == nil {
		return fmt.Errorf("no configuration loaded")
	}
	shown := *ctx.Config
	shown.Storage = maskPassword(shown.Storage)

	data, err := yaml.Marshal(&shown)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = ctx.Stdout().Write(data)
	return err
}

type ConfigPathCmd struct{}

func (c *ConfigPathCmd) Run(ctx *cli.Context) error {
	ctx.Println(utils.ExpandHome(ctx.ConfigPath))
	return nil
}
