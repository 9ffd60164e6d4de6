package main

// main serves the rest api, as a lambda by default or over http with the local build tag.
func main() {
	initApp()
}
