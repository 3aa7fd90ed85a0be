package main

import (
	_ "time/tzdata" // TZ must resolve on minimal images

	"vivero/pkg/cli"
)

func main() {
	cli.Execute()
}
