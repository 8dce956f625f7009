// Command probe checks a demo server endpoint and exits 0 on a 2xx response.
// It serves as a container health check on images without curl.
package main

import (
	"context"
	"log"
	"os"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}
