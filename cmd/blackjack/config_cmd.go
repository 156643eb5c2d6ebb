package main

import "os"

type ConfigCmd struct{}

func (c *ConfigCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(cfg.Encode())
	return err
}
