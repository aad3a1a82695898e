package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/taskapi/internal/domain"
	"github.com/phrazzld/taskapi/internal/mocks"
	"github.com/phrazzld/taskapi/internal/service"
	"github.com/phrazzld/taskapi/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newMockDB returns a sqlmock-backed *sql.DB for exercising RunInTransaction.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, sqlMock
}

func ptr(s string) *string { return &s }

func existingUser() *domain.User {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:             7,
		Name:           "Ana",
		Email:          "ana@x.com",
		HashedPassword: "hashed:Abcdef12",
		Role:           "user",
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()
	page := domain.NewPageRequest(2)

	t.Run("maps users to list items", func(t *testing.T) {
		users := new(mocks.TestifyMockUserStore)
		u := existingUser()
		users.On("List", ctx, page).Return(&domain.Page[domain.User]{
			Items:       []domain.User{*u},
			CurrentPage: 2,
			PerPage:     100,
			Total:       101,
		}, nil)

		svc := service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, nil, nil)
		got, err := svc.ListUsers(ctx, page)
		require.NoError(t, err)

		assert.Equal(t, []domain.UserListItem{u.ListItem()}, got.Items)
		assert.Equal(t, 2, got.CurrentPage)
		assert.Equal(t, int64(101), got.Total)
		users.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		users := new(mocks.TestifyMockUserStore)
		users.On("List", ctx, page).Return(nil, errors.New("boom"))

		svc := service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, nil, nil)
		_, err := svc.ListUsers(ctx, page)

		var svcErr *service.ServiceError
		assert.ErrorAs(t, err, &svcErr)
	})
}

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()

	users := new(mocks.TestifyMockUserStore)
	users.On("GetByID", ctx, int64(7)).Return(existingUser(), nil)
	users.On("GetByID", ctx, int64(8)).Return(nil, store.ErrUserNotFound)
	users.On("GetByID", ctx, int64(9)).Return(nil, errors.New("boom"))

	svc := service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, nil, nil)

	detail, err := svc.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", detail.Email)

	_, err = svc.GetUser(ctx, 8)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = svc.GetUser(ctx, 9)
	var svcErr *service.ServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.False(t, store.IsNotFoundError(err))
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	users := mocks.NewMockUserStore()
	svc := service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, nil, nil)

	summary, err := svc.CreateUser(ctx, anaInput())
	require.NoError(t, err)
	assert.Equal(t, domain.UserSummary{ID: 1, Name: "Ana", Email: "ana@x.com", Role: "user"}, *summary)

	_, err = svc.CreateUser(ctx, anaInput())
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("email"))
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps unset fields and password hash", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		users := new(mocks.TestifyMockUserStore)
		users.On("GetByID", mock.Anything, int64(7)).Return(existingUser(), nil)
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == 7 &&
				u.Name == "Ana Maria" &&
				u.Email == "ana@x.com" &&
				u.HashedPassword == "hashed:Abcdef12" &&
				u.Role == "user"
		})).Return(nil)

		svc := service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, db, nil)
		summary, err := svc.UpdateUser(ctx, 7, service.UpdateUserInput{Name: ptr("Ana Maria")})
		require.NoError(t, err)
		assert.Equal(t, "Ana Maria", summary.Name)
		users.AssertExpectations(t)
	})

	t.Run("provided password is re-hashed", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		users := new(mocks.TestifyMockUserStore)
		users.On("GetByID", mock.Anything, int64(7)).Return(existingUser(), nil)
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.HashedPassword == "hashed:Newpass99"
		})).Return(nil)

		svc := service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, db, nil)
		_, err := svc.UpdateUser(ctx, 7, service.UpdateUserInput{Password: ptr("Newpass99")})
		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		users := new(mocks.TestifyMockUserStore)
		users.On("EmailExists", ctx, "bob@x.com", int64(7)).Return(true, nil)

		svc := service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, nil, nil)
		_, err := svc.UpdateUser(ctx, 7, service.UpdateUserInput{Email: ptr("bob@x.com")})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"The email has already been taken."}, verr.Fields["email"])
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("keeping own email is allowed", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		users := new(mocks.TestifyMockUserStore)
		users.On("EmailExists", ctx, "ana@x.com", int64(7)).Return(false, nil)
		users.On("GetByID", mock.Anything, int64(7)).Return(existingUser(), nil)
		users.On("Update", mock.Anything, mock.Anything).Return(nil)

		svc := service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, db, nil)
		_, err := svc.UpdateUser(ctx, 7, service.UpdateUserInput{Email: ptr("ana@x.com")})
		require.NoError(t, err)
	})

	t.Run("provided empty values fail validation", func(t *testing.T) {
		users := new(mocks.TestifyMockUserStore)
		svc := service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, nil, nil)

		_, err := svc.UpdateUser(ctx, 7, service.UpdateUserInput{
			Name:     ptr(""),
			Email:    ptr("not-an-email"),
			Password: ptr("short"),
			Role:     ptr(""),
		})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 4)
		users.AssertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		users := new(mocks.TestifyMockUserStore)
		users.On("GetByID", mock.Anything, int64(99)).Return(nil, store.ErrUserNotFound)

		svc := service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, db, nil)
		_, err := svc.UpdateUser(ctx, 99, service.UpdateUserInput{Role: ptr("admin")})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("store failure rolls back", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		users := new(mocks.TestifyMockUserStore)
		users.On("GetByID", mock.Anything, int64(7)).Return(existingUser(), nil)
		users.On("Update", mock.Anything, mock.Anything).
			Return(store.NewStoreError("user", "update", "database error", errors.New("boom")))

		svc := service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, db, nil)
		_, err := svc.UpdateUser(ctx, 7, service.UpdateUserInput{Role: ptr("admin")})

		var storeErr *store.StoreError
		assert.ErrorAs(t, err, &storeErr)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes in a transaction", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		users := new(mocks.TestifyMockUserStore)
		users.On("Delete", mock.Anything, int64(7)).Return(nil)

		svc := service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, db, nil)
		require.NoError(t, svc.DeleteUser(ctx, 7))
		users.AssertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		users := new(mocks.TestifyMockUserStore)
		users.On("Delete", mock.Anything, int64(7)).Return(store.ErrUserNotFound)

		svc := service.NewUserService(users, nil, &mocks.MockPasswordHasher{}, db, nil)
		assert.ErrorIs(t, svc.DeleteUser(ctx, 7), store.ErrUserNotFound)
	})
}

func TestUserService_ListUserTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the user's tasks", func(t *testing.T) {
		users := new(mocks.TestifyMockUserStore)
		tasks := new(mocks.TestifyMockTaskStore)
		users.On("GetByID", ctx, int64(7)).Return(existingUser(), nil)
		tasks.On("ListByUser", ctx, int64(7)).Return([]domain.Task{{ID: 1, UserID: 7, Name: "Write"}}, nil)

		svc := service.NewUserService(users, tasks, &mocks.MockPasswordHasher{}, nil, nil)
		got, err := svc.ListUserTasks(ctx, 7)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("no tasks yields an empty slice", func(t *testing.T) {
		users := new(mocks.TestifyMockUserStore)
		tasks := new(mocks.TestifyMockTaskStore)
		users.On("GetByID", ctx, int64(7)).Return(existingUser(), nil)
		tasks.On("ListByUser", ctx, int64(7)).Return(nil, nil)

		svc := service.NewUserService(users, tasks, &mocks.MockPasswordHasher{}, nil, nil)
		got, err := svc.ListUserTasks(ctx, 7)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("missing user", func(t *testing.T) {
		users := new(mocks.TestifyMockUserStore)
		tasks := new(mocks.TestifyMockTaskStore)
		users.On("GetByID", ctx, int64(8)).Return(nil, store.ErrUserNotFound)

		svc := service.NewUserService(users, tasks, &mocks.MockPasswordHasher{}, nil, nil)
		_, err := svc.ListUserTasks(ctx, 8)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		tasks.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
	})
}
