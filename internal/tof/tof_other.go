//go:build !(linux && (amd64 || arm64))

package tof

import (
	"github.com/lee20171130/aditof-sdk/pkg/tof"
)

// The sensor only exists on the 64-bit linux carrier boards.

func Init() {}

func Get() *tof.Device {
	return nil
}

func Shutdown() {}
