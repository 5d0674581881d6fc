package grpc

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/logging"
	"github.com/dmitrijs2005/catsocial/internal/rpc"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/services"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
)

// ---- fakes ----

type fakeSessions struct {
	tokens map[string]*models.User
	calls  int
}

func (f *fakeSessions) Resolve(_ context.Context, token string) (*models.User, error) {
	f.calls++
	if u, ok := f.tokens[token]; ok {
		return u, nil
	}
	return nil, common.Errorf(common.ErrUnauthorized, "invalid session token")
}

type fakeUsers struct {
	userService
	register func(username, passwordHash, email string) (string, error)
	profile  func(viewer *models.User, target string) (*models.Profile, error)
}

func (f *fakeUsers) Register(_ context.Context, username, passwordHash, email string) (string, error) {
	return f.register(username, passwordHash, email)
}

func (f *fakeUsers) GetProfile(_ context.Context, viewer *models.User, target string) (*models.Profile, error) {
	return f.profile(viewer, target)
}

type fakeGraph struct {
	graphService
	mu    sync.Mutex
	calls []string
}

func (f *fakeGraph) record(op string, me *models.User, target string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if me == nil {
		return common.Errorf(common.ErrUnauthorized, "authentication required")
	}
	f.calls = append(f.calls, op+":"+me.UserName+"->"+target)
	return nil
}

func (f *fakeGraph) Follow(_ context.Context, me *models.User, target string) (*services.FollowResult, error) {
	if err := f.record("follow", me, target); err != nil {
		return nil, err
	}
	return &services.FollowResult{Status: "followed", FollowerCount: 1, FollowingCount: 1}, nil
}

func (f *fakeGraph) Unfollow(_ context.Context, me *models.User, target string) (*services.FollowResult, error) {
	if err := f.record("unfollow", me, target); err != nil {
		return nil, err
	}
	return &services.FollowResult{Status: "unfollowed"}, nil
}

func (f *fakeGraph) Like(_ context.Context, me *models.User, catID string) (*services.LikeResult, error) {
	if err := f.record("like", me, catID); err != nil {
		return nil, err
	}
	return &services.LikeResult{Likes: 1, Liked: true}, nil
}

func (f *fakeGraph) Unlike(_ context.Context, me *models.User, catID string) (*services.LikeResult, error) {
	if err := f.record("unlike", me, catID); err != nil {
		return nil, err
	}
	return &services.LikeResult{Likes: 0, Liked: false}, nil
}

type fakeFeed struct {
	feedService
	listCats func(viewer *models.User, q services.CatQuery) (*models.Page[models.CatView], error)
}

func (f *fakeFeed) ListCats(_ context.Context, viewer *models.User, q services.CatQuery) (*models.Page[models.CatView], error) {
	return f.listCats(viewer, q)
}

type observation struct {
	method, code string
}

type fakeObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (f *fakeObserver) ObserveRPC(method, code string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.obs = append(f.obs, observation{method, code})
}

func (f *fakeObserver) all() []observation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]observation(nil), f.obs...)
}

// ---- harness ----

var alice = &models.User{UserName: "alice"}

const aliceToken = "alice-token"

type harness struct {
	conn     *grpc.ClientConn
	server   *GRPCServer
	sessions *fakeSessions
	observer *fakeObserver
}

// start serves svc over an in-memory listener. Missing session resolver
// defaults to one knowing aliceToken.
func start(t *testing.T, svc Services) *harness {
	t.Helper()

	sessions, ok := svc.Sessions.(*fakeSessions)
	if !ok || sessions == nil {
		sessions = &fakeSessions{tokens: map[string]*models.User{aliceToken: alice}}
		svc.Sessions = sessions
	}
	obs := &fakeObserver{}
	s := NewGRPCServer("bufnet", logging.Nop{}, svc, obs)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return &harness{conn: conn, server: s, sessions: sessions, observer: obs}
}

func (h *harness) call(ctx context.Context, method string, req, resp any) error {
	return h.conn.Invoke(ctx, rpc.FullMethod(method), req, resp)
}

func withToken(token string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), rpc.SessionTokenKey, token)
}
