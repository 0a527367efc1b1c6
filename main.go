package main

import "github.com/bgraf/trackposter/cmd"

func main() {
	cmd.Execute()
}
