package main

import (
	"flag"
	"fmt"
	"os"

	"zhiyu/internal/di"
	"zhiyu/internal/structures"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	debug := flag.Bool("debug", false, "duplicate logs to stdout")
	flag.Parse()

	flags := &structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	}

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "zhiyud: %v\n", err)
		os.Exit(1)
	}
}
