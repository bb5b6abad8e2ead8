package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pinfold/service/internal/user"
)

func newTestService(t *testing.T) (*Service, *user.User) {
	t.Helper()
	userSvc := user.NewServiceWithCost(user.NewMemoryRepository(), bcrypt.MinCost)
	owner, err := userSvc.Register(context.Background(), "Ada", "ada@example.com", user.GenderFemale, "hunter22")
	require.NoError(t, err)

	return NewService(NewMemoryRepository(), userSvc), owner
}

func TestCreateBoard(t *testing.T) {
	svc, owner := newTestService(t)

	b, err := svc.Create(context.Background(), CreateInput{
		Name:        "travel",
		Description: "places to go",
		OwnerID:     owner.ID,
		IsPrivate:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, owner.ID, b.OwnerID)
	assert.True(t, b.IsPrivate)
}

func TestCreateBoardMissingOwner(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Name: "travel", OwnerID: 99})
	require.ErrorIs(t, err, user.ErrNotFound)
}

func TestListByOwner(t *testing.T) {
	svc, owner := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"travel", "food", "code"} {
		_, err := svc.Create(ctx, CreateInput{Name: name, OwnerID: owner.ID})
		require.NoError(t, err)
	}

	boards, err := svc.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, boards, 3)
	assert.Equal(t, "travel", boards[0].Name)

	empty, err := svc.ListByOwner(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}
