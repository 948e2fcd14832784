package main

import "perfhub/internal/app/server"

func main() {
	server.Run()
}
