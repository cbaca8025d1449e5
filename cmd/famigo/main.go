// Package main implements the famigo NES emulator executable.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"famigo/internal/app"
	"famigo/internal/cartridge"
	"famigo/internal/version"
)

func main() {
	var (
		configFile  = flag.String("config", "", "path to configuration file")
		headless    = flag.Bool("headless", false, "run without a window")
		frames      = flag.Int("frames", 60, "frames to run in headless mode")
		dumpOnExit  = flag.Bool("dump", false, "dump PPU/CPU state on exit")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	romPath := flag.Arg(0)
	if romPath == "" {
		fmt.Fprintln(os.Stderr, "usage: famigo [flags] <rom.nes|rom.zip>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	configPath := *configFile
	if configPath == "" {
		configPath = app.DefaultConfigPath()
	}
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *dumpOnExit {
		cfg.Debug.DumpOnExit = true
	}

	if *headless {
		if _, err := app.RunHeadless(cfg, romPath, *frames); err != nil {
			fatalLoad(err)
		}
		return
	}

	application, err := app.New(cfg, romPath)
	if err != nil {
		fatalLoad(err)
	}
	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}

// fatalLoad reports cartridge errors with their kind so a bad ROM file reads
// differently from an unsupported mapper.
func fatalLoad(err error) {
	var cartErr *cartridge.Error
	if errors.As(err, &cartErr) {
		log.Fatalf("%s: %s", cartErr.Kind, cartErr.Message)
	}
	log.Fatal(err)
}
