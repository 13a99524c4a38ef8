package main

import (
	"github.com/lee20171130/aditof-sdk/internal/app"
	"github.com/lee20171130/aditof-sdk/internal/tof"
	"github.com/lee20171130/aditof-sdk/pkg/shell"
)

func main() {
	app.Init() // init config and logs
	tof.Init() // open the sensor per config

	shell.RunUntilSignal()

	tof.Shutdown()
}
