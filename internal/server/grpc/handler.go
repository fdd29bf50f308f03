package grpc

import (
	"context"
	"errors"

	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Signup(ctx context.Context, req *pb.SignupRequest) (*pb.MessageResponse, error) {

	s.logger.Info(ctx, "Registration request")

	user, err := s.users.Register(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &pb.MessageResponse{Message: common.MessageRegistered}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	token, err := s.users.Login(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.LoginResponse{Message: common.MessageLoggedIn, Token: token}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *pb.ListUsersRequest) (*pb.ListUsersResponse, error) {

	emails, err := s.users.ListEmails(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	users := make([]*pb.User, 0, len(emails))
	for _, e := range emails {
		users = append(users, &pb.User{Email: e})
	}
	return &pb.ListUsersResponse{Users: users}, nil
}

// toStatus maps service errors to gRPC status codes. Store and internal
// failures never carry detail to the caller.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrEmailTaken):
		return status.Error(codes.InvalidArgument, common.MessageEmailTaken)
	case errors.Is(err, common.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, common.MessageInvalidCredentials)
	case errors.Is(err, common.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "missing token")
	case common.IsForbidden(err):
		return status.Error(codes.PermissionDenied, "invalid token")
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
