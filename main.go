package main

import "marketplace-console/cmd"

func main() {
	cmd.Execute()
}
