//go:build windows

package main

func SetupRotation() {
	log.Info("Log rotation does not currently work on windows.")
}
