/*
flag package sets up cli flags shared across the service binaries.

Usage:

	Flags listed in this package are shared across boundaries and
	service-agnostic. For service dependent flags please define them in the
	respective package.
*/
package flag

import (
	"flag"
)

const (
	HubServer = "hub_server"
)

var (
	IsDevelopment bool
	ServiceName   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", HubServer, "name of the service this process runs as")
	flag.Parse()
}
