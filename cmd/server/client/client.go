// Package client provides test commands against a running strain-screen server
package client

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var (
	// Connection flags
	serverURL  string
	healthAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for strain-screen",
	Long:  `Client commands exercise a running strain-screen server with real requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "HTTP server base URL")
	ClientCmd.PersistentFlags().StringVar(&healthAddr, "health-server", "localhost:50051", "gRPC health server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(getStrainCmd)
	ClientCmd.AddCommand(healthCmd)
}

// createHTTPClient creates the client used for the JSON API
func createHTTPClient() *http.Client {
	return &http.Client{Timeout: timeout}
}

// createConnection creates a gRPC connection to the health server
func createConnection() (*grpc.ClientConn, func(), error) {
	conn, err := grpc.NewClient(healthAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to health server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return conn, cleanup, nil
}
