//go:build !windows

package main

import "go.uber.org/zap"

func enableDPIAwareness(*zap.SugaredLogger) {}
