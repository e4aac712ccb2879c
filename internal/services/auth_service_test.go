package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/faithconnect/backend/internal/apperr"
	"github.com/anonto42/faithconnect/backend/internal/models"
	"github.com/anonto42/faithconnect/backend/internal/repositories"
	"github.com/anonto42/faithconnect/backend/internal/testutil"
	"github.com/anonto42/faithconnect/backend/internal/tokens"
	"github.com/anonto42/faithconnect/backend/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupReq(email string, role models.Role) *models.SignupRequest {
	return &models.SignupRequest{
		Email:    email,
		Password: "correct horse",
		Name:     "Ruth",
		Role:     role,
		Faith:    strp("Christianity"),
	}
}

func TestSignupAndLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tok, err := e.auth.Signup(ctx, signupReq("  Ruth@Example.ORG ", models.RoleWorshiper))
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, models.RoleWorshiper, tok.Role)

	stored, err := e.users.GetUserByID(ctx, tok.UserID)
	require.NoError(t, err)
	assert.Equal(t, "ruth@example.org", stored.Email)
	assert.NotEqual(t, "correct horse", stored.Password)

	_, err = e.auth.Signup(ctx, signupReq("RUTH@example.org", models.RoleLeader))
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "Email already registered", err.Error())

	login, err := e.auth.Login(ctx, &models.LoginRequest{Email: "ruth@EXAMPLE.org", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, tok.UserID, login.UserID)

	user, err := e.auth.Authenticate(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tok.UserID, user.ID)

	_, err = e.auth.Login(ctx, &models.LoginRequest{Email: "ruth@example.org", Password: "wrong password"})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	_, err = e.auth.Login(ctx, &models.LoginRequest{Email: "nobody@example.org", Password: "correct horse"})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestSignupRequiresFaithForWorshipers(t *testing.T) {
	e := newEnv(t)
	req := signupReq("ruth@example.org", models.RoleWorshiper)
	req.Faith = strp("   ")

	_, err := e.auth.Signup(context.Background(), req)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	leader := signupReq("naomi@example.org", models.RoleLeader)
	leader.Faith = nil
	_, err = e.auth.Signup(context.Background(), leader)
	assert.NoError(t, err)
}

func TestInactiveAccounts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	tok, err := e.auth.Signup(ctx, signupReq("ruth@example.org", models.RoleWorshiper))
	require.NoError(t, err)
	require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", tok.UserID).Update("is_active", false).Error)

	_, err = e.auth.Login(ctx, &models.LoginRequest{Email: "ruth@example.org", Password: "correct horse"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Equal(t, "Account is inactive", err.Error())

	_, err = e.auth.Authenticate(ctx, tok.AccessToken)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, err = e.auth.Authenticate(ctx, "not-a-token")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestUpdateProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	w := testutil.CreateWorshiper(t, e.db, "ruth")

	updated, err := e.auth.UpdateProfile(ctx, w, &models.UpdateProfileRequest{Bio: strp("  Gleaner  ")})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "Gleaner", *updated.Bio)
	assert.Equal(t, "Christianity", *updated.Faith)

	_, err = e.auth.UpdateProfile(ctx, w, &models.UpdateProfileRequest{Faith: strp("")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

type fakeVerifier struct {
	token *auth.Token
	err   error
}

func (f fakeVerifier) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return f.token, f.err
}

func TestFirebaseLogin(t *testing.T) {
	db := testutil.NewDB(t)
	users := repositories.NewPostgresUserRepository(db)
	issuer := tokens.NewIssuer("test-secret", time.Hour)
	ctx := context.Background()

	verifier := fakeVerifier{token: &auth.Token{
		UID:    "fb-123",
		Claims: map[string]interface{}{"email": "Boaz@Example.org", "name": "Boaz"},
	}}
	svc := NewAuthService(users, issuer, verifier, logging.Discard())

	first, err := svc.FirebaseLogin(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, models.RoleWorshiper, first.Role)

	again, err := svc.FirebaseLogin(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, first.UserID, again.UserID)

	linked := testutil.CreateLeader(t, db, "naomi")
	svc = NewAuthService(users, issuer, fakeVerifier{token: &auth.Token{
		UID:    "fb-456",
		Claims: map[string]interface{}{"email": "naomi@example.org"},
	}}, logging.Discard())
	tok, err := svc.FirebaseLogin(ctx, "id-token")
	require.NoError(t, err)
	assert.Equal(t, linked.ID, tok.UserID)
	assert.Equal(t, models.RoleLeader, tok.Role)

	svc = NewAuthService(users, issuer, fakeVerifier{err: errors.New("expired")}, logging.Discard())
	_, err = svc.FirebaseLogin(ctx, "id-token")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	svc = NewAuthService(users, issuer, nil, logging.Discard())
	_, err = svc.FirebaseLogin(ctx, "id-token")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
