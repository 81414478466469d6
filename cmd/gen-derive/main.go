package main

import (
	"fmt"
	"os"

	"github.com/seitarof/gen-derive/internal/cli"
	"github.com/seitarof/gen-derive/internal/defs"
	"github.com/seitarof/gen-derive/internal/generator"
	"github.com/seitarof/gen-derive/internal/loader"
	"github.com/seitarof/gen-derive/internal/logger"
	"github.com/seitarof/gen-derive/internal/matcher"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		logger.NewLogger(nil).Error("invalid arguments", "err", err)
		os.Exit(2)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.JSON = cfg.JSONLog
	log := logger.NewLogger(logCfg)

	l := loader.New()
	d := defs.NewReader()
	m := matcher.NewItemMatcher()
	g := generator.New(generator.NewFileWriter(os.Stdout))

	runner := cli.NewRunner(l, d, m, g, log)
	if err := runner.Run(cfg); err != nil {
		log.Error("run failed", "err", err)
		os.Exit(1)
	}
}
