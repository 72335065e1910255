package main

import "ebay-scraper/cli"

func main() {
	cli.Execute()
}
