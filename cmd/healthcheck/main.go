package main

import (
	"net/http"
	"os"
	"time"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
)

const defaultHealthURL = "http://127.0.0.1:5050/api/version"

func main() {
	url := os.Getenv(constants.EnvHealthcheckURL)
	if url == "" {
		url = defaultHealthURL
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
