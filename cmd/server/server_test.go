package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/KirkDiggler/strain-screen/internal/config"
)

type ServerTestSuite struct {
	suite.Suite
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) TestHealthServerReportsServingThenNotServing() {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)

	srv, healthServer := newHealthServer()
	go func() {
		_ = srv.Serve(lis) // nolint:errcheck // stopped below
	}()
	defer srv.Stop()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	s.Require().NoError(err)
	defer func() {
		_ = conn.Close() // nolint:errcheck // test cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := grpc_health_v1.NewHealthClient(conn)
	for _, service := range []string{"", healthServiceName} {
		resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
		s.Require().NoError(err)
		s.Equal(grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
	}

	healthServer.Shutdown()

	resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	s.Require().NoError(err)
	s.Equal(grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func (s *ServerTestSuite) TestNewLogger() {
	s.Run("json at configured level", func() {
		var buf bytes.Buffer
		cfg := config.Defaults()
		cfg.LogLevel = "warn"

		logger := newLogger(&buf, cfg)
		logger.Info("hidden")
		logger.Warn("shown", "strain_id", "1024")

		var entry map[string]interface{}
		s.Require().NoError(json.Unmarshal(buf.Bytes(), &entry))
		s.Equal("shown", entry["msg"])
		s.Equal("1024", entry["strain_id"])
	})

	s.Run("text format", func() {
		var buf bytes.Buffer
		cfg := config.Defaults()
		cfg.LogFormat = config.LogFormatText

		newLogger(&buf, cfg).Info("hello", "port", 8080)
		s.Contains(buf.String(), "msg=hello")
		s.Contains(buf.String(), "port=8080")
	})
}
