package user

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-lite/internal/application/event"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/jwt"
	"github.com/xiebiao/bookstore-lite/pkg/metrics"
	"github.com/xiebiao/bookstore-lite/pkg/mq"
)

type memoryRepo struct {
	users []*user.User
}

func (r *memoryRepo) Load(ctx context.Context) ([]*user.User, error) {
	out := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

func (r *memoryRepo) Save(ctx context.Context, users []*user.User) error {
	r.users = users
	return nil
}

type recordingPublisher struct {
	events []mq.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e mq.Event) error {
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	svc       user.Service
	pub       *recordingPublisher
	jwt       *jwt.Manager
	blacklist *jwt.MemoryBlacklist
	register  *RegisterUseCase
	login     *LoginUseCase
	logout    *LogoutUseCase
	current   *CurrentUserUseCase
}

func newFixture() *fixture {
	svc := user.NewService(&memoryRepo{})
	pub := &recordingPublisher{}
	manager := jwt.NewManager("test-secret", time.Hour)
	blacklist := jwt.NewMemoryBlacklist()
	notifier := event.NewNotifier(pub, zap.NewNop())

	return &fixture{
		svc:       svc,
		pub:       pub,
		jwt:       manager,
		blacklist: blacklist,
		register:  NewRegisterUseCase(svc, notifier),
		login:     NewLoginUseCase(svc, manager),
		logout:    NewLogoutUseCase(manager, blacklist),
		current:   NewCurrentUserUseCase(svc, manager, blacklist),
	}
}

func bob() RegisterRequest {
	return RegisterRequest{Username: "bob", Password: "secret1", Email: "bob@example.com", FirstName: "Bob", LastName: "Smith"}
}

func TestRegisterUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	metrics.InitMetrics()

	t.Run("顾客注册", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.UsersRegisteredTotal.WithLabelValues("customer"))

		u, err := f.register.Execute(ctx, bob())
		require.NoError(t, err)
		assert.Equal(t, user.RoleCustomer, u.Role)

		assert.Equal(t, before+1, testutil.ToFloat64(metrics.UsersRegisteredTotal.WithLabelValues("customer")))
		require.Len(t, f.pub.events, 1)
		assert.Equal(t, mq.EventUserRegistered, f.pub.events[0].Type)
	})

	t.Run("添加店员", func(t *testing.T) {
		req := RegisterRequest{Username: "sally", Password: "staff123", Email: "sally@example.com", FirstName: "Sally", LastName: "Jones", Role: user.RoleStaff}
		u, err := f.register.Execute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, user.RoleStaff, u.Role)
	})

	t.Run("用户名重复", func(t *testing.T) {
		_, err := f.register.Execute(ctx, bob())
		assert.ErrorIs(t, err, user.ErrUsernameTaken)
		assert.Len(t, f.pub.events, 2, "失败不发布事件")
	})
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := f.register.Execute(ctx, bob())
	require.NoError(t, err)

	t.Run("密码错误", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultFailure))
		_, err := f.login.Execute(ctx, LoginRequest{Username: "bob", Password: "wrong!"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
		assert.Equal(t, 401, apperrors.GetAppError(err).HTTPStatus())
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultFailure)))
	})

	result, err := f.login.Execute(ctx, LoginRequest{Username: "bob", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "bob", result.User.Username)
	assert.NotEmpty(t, result.Token)

	claims, err := f.jwt.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)

	t.Run("当前用户", func(t *testing.T) {
		u, err := f.current.Execute(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, "bob", u.Username)

		none, err := f.current.Execute(ctx, "")
		assert.NoError(t, err)
		assert.Nil(t, none)

		_, err = f.current.Execute(ctx, "garbage")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		require.NoError(t, f.logout.Execute(ctx, result.Token))
		revoked, _ := f.blacklist.IsRevoked(ctx, result.Token)
		assert.True(t, revoked)

		_, err := f.current.Execute(ctx, result.Token)
		assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	})

	t.Run("无Token登出", func(t *testing.T) {
		assert.NoError(t, f.logout.Execute(ctx, ""))
		assert.NoError(t, f.logout.Execute(ctx, "not-a-token"))
	})
}

func TestAccountUseCases(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u, err := f.register.Execute(ctx, bob())
	require.NoError(t, err)

	users, err := NewListUsersUseCase(f.svc).Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	city := "Springfield"
	updated, err := NewUpdateProfileUseCase(f.svc).Execute(ctx, u.ID, user.ProfilePatch{
		Phone:   "555-0100",
		Address: &user.AddressPatch{City: &city},
	})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", updated.Profile.Phone)

	got, err := NewGetProfileUseCase(f.svc).Execute(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Springfield", got.Profile.Address.City)

	pm := NewPaymentMethodsUseCase(f.svc)
	first, err := pm.Add(ctx, u.ID, user.PaymentMethodInput{Type: "card", LastFour: "4242", IsDefault: true})
	require.NoError(t, err)
	methods, err := pm.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, methods, 1)

	require.NoError(t, pm.Delete(ctx, u.ID, first.ID))
	assert.ErrorIs(t, pm.Delete(ctx, u.ID, first.ID), user.ErrPaymentMethodNotFound)
}
