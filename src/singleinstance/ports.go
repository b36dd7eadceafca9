package singleinstance

import (
	"net"
	"strconv"
)

const (
	residentHost = "127.0.0.1"
	DefaultPort  = 49600
)

// addr returns the loopback address for port, clamping it to [1024, 65535]
// and falling back to DefaultPort outside that range.
func addr(port int) string {
	if port < 1024 || port > 65535 {
		port = DefaultPort
	}
	return net.JoinHostPort(residentHost, strconv.Itoa(port))
}
