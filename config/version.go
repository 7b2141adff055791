package config

import (
	"fmt"
)

var (
	version = "dev"
	AppName = "cfddns"
	intro   = "A dynamic DNS agent that keeps a Cloudflare A record synced to the current public IP."
	date    = "unknown"
)

func ShowVersion() {
	fmt.Printf("%s %s, built at %s\n%s\n", AppName, version, date, intro)
}
