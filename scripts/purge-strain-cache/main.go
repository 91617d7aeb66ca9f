// Command purge-strain-cache finds cached strain views that no longer decode
// and deletes them after confirmation.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	redisclient "github.com/KirkDiggler/strain-screen/internal/redis"
	strainview "github.com/KirkDiggler/strain-screen/internal/repositories/strain_view"
)

func main() {
	addr := os.Getenv("STRAIN_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client, err := redisclient.NewClient(addr, &redisclient.Options{
		UseTLS: os.Getenv("STRAIN_REDIS_TLS") == "true",
	})
	if err != nil {
		log.Fatal("Failed to create Redis client:", err)
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	if err := redisclient.Ping(ctx, client, 5*time.Second); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", addr)
	fmt.Println("Scanning cached strain views...")

	result, err := strainview.ScanCorrupt(ctx, client)
	if err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d keys, found %d corrupted entries\n", result.Checked, len(result.Corrupt))
	if len(result.Corrupt) == 0 {
		return
	}

	for _, key := range result.Corrupt {
		fmt.Printf("  - %s\n", key)
	}

	fmt.Print("\nDelete these entries? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)
	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	removed, err := strainview.Purge(ctx, client, result.Corrupt)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Deleted %d entries\n", removed)
}
