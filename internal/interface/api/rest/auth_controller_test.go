package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fileshare-api/internal/application/services"
	domain "fileshare-api/internal/domain/user"
	userDB "fileshare-api/internal/infrastructure/db/postgres/user"
	"fileshare-api/internal/interface/api/rest/dto/auth"
)

type FakeAuthService struct {
	RegisterFunc func(ctx context.Context, email, password string) (*domain.User, error)
	LoginFunc    func(ctx context.Context, email, password string) (string, error)
}

func (f *FakeAuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if f.RegisterFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RegisterFunc(ctx, email, password)
}
func (f *FakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if f.LoginFunc == nil {
		return "", errors.New("not used")
	}
	return f.LoginFunc(ctx, email, password)
}

func setupAuthRouter(t *testing.T, as *FakeAuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewAuthController(r, zap.NewNop(), as)

	return r
}

func TestAuthController_RegisterHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		mockAS     *FakeAuthService
		wantStatus int
	}{
		{
			name:       "400 malformed json",
			body:       "{",
			mockAS:     &FakeAuthService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "400 invalid email",
			body:       auth.LoginRequest{Email: "not-an-email", Password: "longenough"},
			mockAS:     &FakeAuthService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "400 short password",
			body:       auth.LoginRequest{Email: "owner@gmail.com", Password: "short"},
			mockAS:     &FakeAuthService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "409 email taken",
			body: auth.LoginRequest{Email: "owner@gmail.com", Password: "longenough"},
			mockAS: &FakeAuthService{
				RegisterFunc: func(ctx context.Context, email, password string) (*domain.User, error) {
					return nil, userDB.ErrEmailAlreadyExists
				},
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "201 registered",
			body: auth.LoginRequest{Email: "owner@gmail.com", Password: "longenough"},
			mockAS: &FakeAuthService{
				RegisterFunc: func(ctx context.Context, email, password string) (*domain.User, error) {
					return &domain.User{UUID: uuid.New(), Email: email}, nil
				},
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupAuthRouter(t, tt.mockAS)
			rr := doReq(t, r, http.MethodPost, RouteRegister, tt.body, nil)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "owner@gmail.com", resp["email"])
				assert.NotEmpty(t, resp["user_id"])
			}
		})
	}
}

func TestAuthController_LoginHandler(t *testing.T) {
	t.Run("401 bad credentials", func(t *testing.T) {
		as := &FakeAuthService{
			LoginFunc: func(ctx context.Context, email, password string) (string, error) {
				return "", services.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(t, as)
		rr := doReq(t, r, http.MethodPost, RouteLogin, auth.LoginRequest{Email: "owner@gmail.com", Password: "wrongpassword"}, nil)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("200 token issued", func(t *testing.T) {
		as := &FakeAuthService{
			LoginFunc: func(ctx context.Context, email, password string) (string, error) {
				return "signed.jwt.token", nil
			},
		}
		r := setupAuthRouter(t, as)
		rr := doReq(t, r, http.MethodPost, RouteLogin, auth.LoginRequest{Email: "owner@gmail.com", Password: "longenough"}, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "signed.jwt.token", resp["access_token"])
		assert.Equal(t, "Bearer", resp["token_type"])
	})
}
