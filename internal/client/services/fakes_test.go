package services

import (
	"context"
	"sync"
	"testing"

	"github.com/samterminal/samclient/internal/client/client"
	"github.com/samterminal/samclient/internal/client/imagecache"
	"github.com/samterminal/samclient/internal/client/models"
	"github.com/samterminal/samclient/internal/client/session"
	"github.com/samterminal/samclient/internal/client/store"
	"github.com/samterminal/samclient/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func newSessionStore(t *testing.T) *session.Store {
	t.Helper()
	db, err := store.Open(context.Background(), store.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewStore(db, "")
}

type countingLoader struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error
}

func newCountingLoader() *countingLoader {
	return &countingLoader{calls: map[string]int{}, fail: map[string]error{}}
}

func (l *countingLoader) Load(_ context.Context, url string) (*imagecache.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls[url]++
	if err := l.fail[url]; err != nil {
		return nil, err
	}
	return &imagecache.Image{URL: url, Bytes: 100}, nil
}

func (l *countingLoader) count(url string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[url]
}

// ---- fake client ----

// fakeClient implements client.Client and, through the embedded
// interface, client.AdminClient. Admin methods not overridden here panic.
type fakeClient struct {
	client.AdminClient

	mu sync.Mutex

	LoginRet      *models.AuthResult
	LoginErr      error
	AdminLoginRet *models.AuthResult
	AdminLoginErr error
	RegisterRet   *models.AuthResult
	RegisterErr   error
	SendCodeRet   *models.EmailCodeSent
	SendCodeErr   error
	VerifyRet     *models.EmailCodeVerified
	SendStatusRet *models.EmailSendStatus

	StatusRet  *models.GameState
	StatusErr  error
	ChatRet    *models.ChatResult
	// ChatFn, when set, builds a fresh result per call.
	ChatFn     func(message string) *models.ChatResult
	ChatErr    error
	SessionRet string
	RecallRet  *models.ChatResult
	MapRet     *models.WorldMap
	MapErr     error
	AssetsRet  []models.FireflyAsset
	ItemsRet   []models.Item
	MemsRet    []models.Memory
	UploadRet  *models.UploadResult
	DomainsRet []models.AdminDomain

	// recorded arguments
	LastRegister    models.RegisterRequest
	LastChatSession string
	LastChatMessage string
	LastRecall      string
	LastToken       string
	LastUploadName  string
	LastUploadData  []byte

	Calls map[string]int
}

func newFakeClient() *fakeClient {
	return &fakeClient{Calls: map[string]int{}}
}

func (f *fakeClient) hit(name, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[name]++
	if token != "" {
		f.LastToken = token
	}
}

func (f *fakeClient) calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[name]
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (*models.AuthResult, error) {
	f.hit("Login", "")
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) AdminLogin(ctx context.Context, username, password string) (*models.AuthResult, error) {
	f.hit("AdminLogin", "")
	return f.AdminLoginRet, f.AdminLoginErr
}

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	f.hit("Register", "")
	f.LastRegister = req
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) SendRegisterEmailCode(ctx context.Context, username, email, altchaPayload string) (*models.EmailCodeSent, error) {
	f.hit("SendRegisterEmailCode", "")
	return f.SendCodeRet, f.SendCodeErr
}

func (f *fakeClient) VerifyRegisterEmailCode(ctx context.Context, requestID, email, code string) (*models.EmailCodeVerified, error) {
	f.hit("VerifyRegisterEmailCode", "")
	return f.VerifyRet, nil
}

func (f *fakeClient) EmailSendStatus(ctx context.Context, requestID string) (*models.EmailSendStatus, error) {
	f.hit("EmailSendStatus", "")
	return f.SendStatusRet, nil
}

func (f *fakeClient) Status(ctx context.Context, token string) (*models.GameState, error) {
	f.hit("Status", token)
	return f.StatusRet, f.StatusErr
}

func (f *fakeClient) Chat(ctx context.Context, token, message, sessionID string) (*models.ChatResult, error) {
	f.hit("Chat", token)
	f.mu.Lock()
	f.LastChatMessage, f.LastChatSession = message, sessionID
	f.mu.Unlock()
	if f.ChatFn != nil {
		return f.ChatFn(message), nil
	}
	return f.ChatRet, f.ChatErr
}

func (f *fakeClient) CreateSession(ctx context.Context, token string) (string, error) {
	f.hit("CreateSession", token)
	return f.SessionRet, nil
}

func (f *fakeClient) RecallMemory(ctx context.Context, token, memoryID, sessionID string) (*models.ChatResult, error) {
	f.hit("RecallMemory", token)
	f.mu.Lock()
	f.LastRecall, f.LastChatSession = memoryID, sessionID
	f.mu.Unlock()
	return f.RecallRet, nil
}

func (f *fakeClient) Map(ctx context.Context, token string) (*models.WorldMap, error) {
	f.hit("Map", token)
	return f.MapRet, f.MapErr
}

func (f *fakeClient) FireflyAssets(ctx context.Context) ([]models.FireflyAsset, error) {
	f.hit("FireflyAssets", "")
	return f.AssetsRet, nil
}

func (f *fakeClient) Inventory(ctx context.Context, token string) ([]models.Item, error) {
	f.hit("Inventory", token)
	return f.ItemsRet, nil
}

func (f *fakeClient) Memories(ctx context.Context, token string) ([]models.Memory, error) {
	f.hit("Memories", token)
	return f.MemsRet, nil
}

func (f *fakeClient) Progress(ctx context.Context, token string) ([]string, error) {
	f.hit("Progress", token)
	return []string{}, nil
}

func (f *fakeClient) UploadImage(ctx context.Context, token, filename string, data []byte) (*models.UploadResult, error) {
	f.hit("UploadImage", token)
	f.LastUploadName = filename
	f.LastUploadData = append([]byte(nil), data...)
	return f.UploadRet, nil
}

func (f *fakeClient) NormalizeURL(u string) string {
	return client.NormalizeURL("http://api", u)
}

func (f *fakeClient) AdminDomains(ctx context.Context, token string) ([]models.AdminDomain, error) {
	f.hit("AdminDomains", token)
	return f.DomainsRet, nil
}

var _ client.Client = (*fakeClient)(nil)

func nopLog() logging.Logger { return logging.Nop() }
