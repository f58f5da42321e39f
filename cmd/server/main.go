package main

import "airmailer/internal/app"

func main() {
	app.Run()
}
