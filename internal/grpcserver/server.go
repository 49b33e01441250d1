package grpcserver

import (
	"context"
	"errors"
	"log"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"musicreg/internal/auth"
	"musicreg/internal/registration"
)

type claimsKey struct{}

// Server serves registrations of the authenticated caller.
type Server struct {
	Svc *registration.Service
}

func NewServer(svc *registration.Service) *Server {
	return &Server{Svc: svc}
}

// New returns a grpc.Server with the registration service and bearer token
// authentication installed.
func New(svc *registration.Service, tokens auth.TokenService, users *auth.Repo, logger *log.Logger) *grpc.Server {
	if logger == nil {
		logger = log.Default()
	}
	s := grpc.NewServer(grpc.UnaryInterceptor(AuthInterceptor(tokens, users, logger)))
	RegisterRegistrationServer(s, NewServer(svc))
	return s
}

// AuthInterceptor validates the "authorization: Bearer <jwt>" metadata the
// same way the HTTP middleware does.
func AuthInterceptor(tokens auth.TokenService, users *auth.Repo, logger *log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		var raw string
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = vals[0]
		}
		claims, err := auth.Authenticate(ctx, tokens, users, raw)
		switch {
		case errors.Is(err, auth.ErrMissingToken):
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		case err != nil:
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		logger.Printf("[grpc] %s user=%s", info.FullMethod, claims.UserID)
		return handler(context.WithValue(ctx, claimsKey{}, claims), req)
	}
}

func claimsFrom(ctx context.Context) (*auth.Claims, error) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	if !ok || c == nil {
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return c, nil
}

func (s *Server) GetRegistration(ctx context.Context, req *GetRegistrationRequest) (*GetRegistrationResponse, error) {
	claims, err := claimsFrom(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil || req.ID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}

	reg, err := s.Svc.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, registration.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "not found")
		}
		return nil, status.Error(codes.Internal, "get failed")
	}
	if reg.UserID != claims.UserID {
		return nil, status.Error(codes.NotFound, "not found")
	}
	return &GetRegistrationResponse{Registration: reg}, nil
}

func (s *Server) ListRegistrations(ctx context.Context, req *ListRegistrationsRequest) (*ListRegistrationsResponse, error) {
	claims, err := claimsFrom(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}

	f := registration.ListFilter{
		UserID: claims.UserID,
		Genre:  strings.TrimSpace(req.Genre),
		Limit:  int(req.Limit),
		Offset: int(req.Offset),
	}.WithDefaults()
	items, total, err := s.Svc.List(ctx, f)
	if err != nil {
		return nil, status.Error(codes.Internal, "list failed")
	}
	return &ListRegistrationsResponse{
		Total:  int32(total),
		Limit:  int32(f.Limit),
		Offset: int32(f.Offset),
		Items:  items,
	}, nil
}
