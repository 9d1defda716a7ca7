package main

import "github.com/meysamhadeli/snackforge/cmd"

func main() {
	cmd.Execute()
}
