package session

import (
	"testing"

	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Lifecycle(t *testing.T) {
	store := NewStore()
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
	assert.Empty(t, store.Token())

	store.Login(models.Identity{UserID: "4", CPF: "52998224725", Role: models.RoleAdmin}, "tok")
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "tok", store.Token())
	require.NotNil(t, store.User())
	assert.Equal(t, "4", store.User().UserID)

	store.Logout()
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
	assert.Empty(t, store.Token())
}

func TestStore_SetUser(t *testing.T) {
	store := NewStore()

	identity := &models.Identity{UserID: "9", Role: models.RoleSuperAdmin}
	store.SetUser(identity)
	assert.True(t, store.IsAuthenticated())

	identity.UserID = "changed"
	assert.Equal(t, "9", store.User().UserID, "store keeps its own copy")

	store.SetUser(nil)
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())
}

func TestStore_UserReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Login(models.Identity{UserID: "1"}, "tok")

	user := store.User()
	user.UserID = "2"
	assert.Equal(t, "1", store.User().UserID)
}

func TestStore_LoginClearsExpired(t *testing.T) {
	store := NewStore()
	store.Login(models.Identity{UserID: "1"}, "old")
	store.markExpired()
	assert.True(t, store.Expired())

	store.Login(models.Identity{UserID: "1"}, "new")
	assert.False(t, store.Expired())
}
