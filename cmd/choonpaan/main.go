// Command choonpaan is the device client: it signs in against the configured
// identity provider, keeps the session on this device and runs the profile
// and admin management operations.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
