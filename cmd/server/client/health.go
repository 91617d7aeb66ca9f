package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/health/grpc_health_v1"
)

var healthService string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Query the gRPC health server",
	Long:  `Ask the gRPC health server whether strain-screen is serving.`,
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().StringVar(&healthService, "service", "", "Service name to check, empty for the whole server")
}

func runHealth(cmd *cobra.Command, _ []string) error {
	conn, cleanup, err := createConnection()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{
		Service: healthService,
	})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Println(resp.GetStatus().String())
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("server is %s", resp.GetStatus())
	}
	return nil
}
