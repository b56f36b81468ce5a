package main

import (
	"os"

	"taskboard-microservice/ctl/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
