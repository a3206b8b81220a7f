package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sara-relief/relief-service/internal/auth"
	"github.com/sara-relief/relief-service/internal/config"
	"github.com/sara-relief/relief-service/internal/domain"
	"github.com/sara-relief/relief-service/internal/events"
	"github.com/sara-relief/relief-service/internal/observability"
	"github.com/sara-relief/relief-service/internal/repository/memory"
)

type fixture struct {
	store         *memory.Store
	dispatcher    events.Dispatcher
	notifications *NotificationService
	auth          *AuthService
	users         *UserService
	resources     *ResourceService
	requests      *RequestService
	volunteers    *VolunteerService
	dashboards    *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher()
	notifications := NewNotificationService(dispatcher, logger, observability.NewMetrics(), 128)
	notifications.RegisterHandlers()

	f := &fixture{
		store:         store,
		dispatcher:    dispatcher,
		notifications: notifications,
		auth: NewAuthService(AuthDependencies{
			UserRepo: store.Users(),
			Tokens:   auth.NewTokenManager("test-secret", 5),
			Hasher:   auth.NewPasswordHasher(4),
		}),
		users:     NewUserService(store.Users(), logger),
		resources: NewResourceService(store.Resources(), dispatcher, logger),
		requests:  NewRequestService(store.Requests(), dispatcher, logger),
		volunteers: NewVolunteerService(VolunteerDependencies{
			AssignmentRepo: store.Assignments(),
			RequestRepo:    store.Requests(),
			Dispatcher:     dispatcher,
			Logger:         logger,
		}),
	}
	f.dashboards = NewDashboardService(f.users, f.resources, f.requests, f.volunteers, config.DashboardConfig{
		AdminRecentLimit:   5,
		HomeRecentLimit:    6,
		RoleDashboardLimit: 10,
	})
	return f
}

func (f *fixture) user(t *testing.T, username string, role domain.Role) *domain.User {
	t.Helper()
	u, err := f.auth.CreateAccount(context.Background(), AccountInput{
		Username: username,
		Email:    username + "@relief.test",
		Password: "password1",
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) request(t *testing.T, owner *domain.User, urgency domain.UrgencyLevel) *domain.Request {
	t.Helper()
	r, err := f.requests.Create(context.Background(), owner, RequestInput{
		Title:          "Drinking water",
		Description:    "Family of four",
		ResourceType:   domain.ResourceTypeWater,
		QuantityNeeded: 20,
		Location:       "North Camp",
		Urgency:        urgency,
	})
	require.NoError(t, err)
	return r
}

func (f *fixture) drainEvents() []events.Event {
	var out []events.Event
	for {
		select {
		case e := <-f.notifications.Outbox():
			out = append(out, e)
		default:
			return out
		}
	}
}
