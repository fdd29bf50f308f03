package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	pb "github.com/dmitrijs2005/gophauth/internal/proto"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL    string
	requestTimeout time.Duration
	conn           *grpc.ClientConn
	client         pb.AuthServiceClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if tok := s.token(); tok != "" {
		ctx = withAccessToken(ctx, tok)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewGophAuthClient(endpointURL string, requestTimeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, requestTimeout: requestTimeout}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewAuthServiceClient(conn)
	return nil
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.requestTimeout)
}

// Signup registers an account and returns the server's confirmation.
func (s *GRPCClient) Signup(ctx context.Context, email, password string) (string, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Signup(ctx, &pb.SignupRequest{Email: email, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}

	return resp.GetMessage(), nil
}

// Login authenticates and keeps the returned token for later calls.
func (s *GRPCClient) Login(ctx context.Context, email, password string) error {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &pb.LoginRequest{Email: email, Password: password})
	if err != nil {
		return s.mapError(err)
	}

	s.mu.Lock()
	s.accessToken = resp.GetToken()
	s.mu.Unlock()

	return nil
}

// ListUsers returns every registered email. Requires a prior Login.
func (s *GRPCClient) ListUsers(ctx context.Context) ([]string, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListUsers(ctx, &pb.ListUsersRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	emails := make([]string, 0, len(resp.GetUsers()))
	for _, u := range resp.GetUsers() {
		emails = append(emails, u.GetEmail())
	}
	return emails, nil
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrForbidden, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
