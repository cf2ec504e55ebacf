package main

import (
	"log"
	"os"

	"github.com/peerclass/peerclass/core"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "BOARD : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	workDir, err := os.Getwd()
	if err != nil {
		logger.Fatal(err)
	}
	conf := core.NewConfig(workDir)

	// start CLI
	cli := newCommandLine(conf, os.Stdout)
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
