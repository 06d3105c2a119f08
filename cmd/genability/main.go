// Command genability sends normalized requests to the Genability REST API.
package main

import "github.com/opengovern/genability-bridge/cmd/genability/cmd"

func main() {
	cmd.Execute()
}
