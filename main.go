package main

import "github.com/jaydubbbbb/train-departures-backend/cmd"

func main() {
	cmd.Execute()
}
