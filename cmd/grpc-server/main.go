package main

import (
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"musicreg/internal/auth"
	"musicreg/internal/grpcserver"
	"musicreg/internal/registration"
	"musicreg/pkg/database"
	"musicreg/pkg/utils"
)

func main() {
	cfg := database.DefaultConfig()
	db, err := database.OpenAndMigrate(cfg)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer db.Close()

	grpcCfg := utils.LoadGrpcConfig()
	listener, err := net.Listen("tcp", grpcCfg.Addr)
	if err != nil {
		log.Fatalf("grpc listen failed: %v", err)
	}

	authCfg := utils.LoadAuthConfig()
	tokens := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}

	// no hub: this process only reads
	svc := registration.NewService(registration.NewRepo(db), nil, utils.LoadServerConfig().CacheTTL, nil)
	grpcServer := grpcserver.New(svc, tokens, auth.NewRepo(db), nil)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Printf("shutdown signal received: %s", sig)
		grpcServer.GracefulStop()
	}()

	log.Printf("gRPC server listening on %s", grpcCfg.Addr)
	if err := grpcServer.Serve(listener); err != nil {
		log.Fatalf("grpc server stopped: %v", err)
	}
	log.Println("grpc server stopped")
}
