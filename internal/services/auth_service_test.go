package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"audimart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.User), args.Error(1)
}

// memoryCache is an in-memory CacheService used instead of a live Redis.
type memoryCache struct {
	mu      sync.Mutex
	strings map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{strings: make(map[string]string)}
}

func (c *memoryCache) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	return nil, nil
}
func (c *memoryCache) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	return nil
}
func (c *memoryCache) DeleteProduct(ctx context.Context, productID uuid.UUID) error { return nil }
func (c *memoryCache) GetAvailability(ctx context.Context) ([]byte, error)          { return nil, nil }
func (c *memoryCache) SetAvailability(ctx context.Context, snapshot interface{}, ttl time.Duration) error {
	return nil
}
func (c *memoryCache) DeleteAvailability(ctx context.Context) error { return nil }
func (c *memoryCache) SetSession(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	return c.SetString(ctx, "session:"+sessionID, userID, ttl)
}
func (c *memoryCache) GetSession(ctx context.Context, sessionID string) (string, error) {
	return c.GetString(ctx, "session:"+sessionID)
}
func (c *memoryCache) DeleteSession(ctx context.Context, sessionID string) error {
	return c.Delete(ctx, "session:"+sessionID)
}

func (c *memoryCache) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strings[key] = value
	return nil
}

func (c *memoryCache) GetString(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strings[key], nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.strings, key)
	return nil
}

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	cache        *memoryCache
	service      AuthService
	user         *models.User
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = &MockUserRepository{}
	suite.cache = newMemoryCache()
	suite.service = NewAuthService(suite.mockUserRepo, suite.cache, "test-secret", 3600, 7*24*3600)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse1"), bcrypt.MinCost)
	require.NoError(suite.T(), err)
	suite.user = &models.User{
		ID:           uuid.New(),
		Name:         "Asha",
		Email:        "asha@audimart.in",
		PasswordHash: string(hash),
		Role:         models.RoleStock,
		Branch:       "Mumbai Main",
		Status:       "active",
	}
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) TestLoginIssuesValidToken() {
	suite.mockUserRepo.On("GetByEmail", mock.Anything, suite.user.Email).Return(suite.user, nil)

	resp, err := suite.service.Login(context.Background(), suite.user.Email, "correct-horse1")
	suite.Require().NoError(err)
	suite.Equal("Bearer", resp.TokenType)
	suite.NotEmpty(resp.RefreshToken)

	claims, err := suite.service.ValidateToken(context.Background(), resp.AccessToken)
	suite.Require().NoError(err)
	suite.Equal(suite.user.ID.String(), claims.UserID)
	suite.Equal(models.RoleStock, claims.Role)
	suite.Equal("Mumbai Main", claims.Branch)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	suite.mockUserRepo.On("GetByEmail", mock.Anything, suite.user.Email).Return(suite.user, nil)

	_, err := suite.service.Login(context.Background(), suite.user.Email, "wrong")
	suite.Error(err)
	suite.Contains(err.Error(), "invalid credentials")
}

func (suite *AuthServiceTestSuite) TestLoginDisabledAccount() {
	suite.user.Status = "disabled"
	suite.mockUserRepo.On("GetByEmail", mock.Anything, suite.user.Email).Return(suite.user, nil)

	_, err := suite.service.Login(context.Background(), suite.user.Email, "correct-horse1")
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestRefreshRotatesToken() {
	suite.mockUserRepo.On("GetByEmail", mock.Anything, suite.user.Email).Return(suite.user, nil)
	suite.mockUserRepo.On("GetByID", mock.Anything, suite.user.ID).Return(suite.user, nil)

	first, err := suite.service.Login(context.Background(), suite.user.Email, "correct-horse1")
	suite.Require().NoError(err)

	second, err := suite.service.RefreshToken(context.Background(), first.RefreshToken)
	suite.Require().NoError(err)
	suite.NotEqual(first.RefreshToken, second.RefreshToken)

	// The old token was consumed by the rotation.
	_, err = suite.service.RefreshToken(context.Background(), first.RefreshToken)
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestRevokeToken() {
	suite.mockUserRepo.On("GetByEmail", mock.Anything, suite.user.Email).Return(suite.user, nil)

	resp, err := suite.service.Login(context.Background(), suite.user.Email, "correct-horse1")
	suite.Require().NoError(err)

	suite.NoError(suite.service.RevokeToken(context.Background(), resp.RefreshToken))

	_, err = suite.service.RefreshToken(context.Background(), resp.RefreshToken)
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestSignupRejectsShortPassword() {
	_, err := suite.service.Signup(context.Background(), "Asha", "asha@audimart.in", "short", models.RoleStock, "Mumbai Main")
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestSignupRejectsUnknownRole() {
	_, err := suite.service.Signup(context.Background(), "Asha", "asha@audimart.in", "long-enough-pass", "janitor", "Mumbai Main")
	suite.Error(err)
}

func TestHashTokenIsDeterministic(t *testing.T) {
	assert.Equal(t, hashToken("abc"), hashToken("abc"))
	assert.NotEqual(t, hashToken("abc"), hashToken("abd"))
	assert.Len(t, hashToken("abc"), 64)
}
