package store

import (
	"testing"
	"time"

	"cardagency/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.BankCode{},
		&models.ApplicationForm{},
		&models.KycDetail{},
	))
	return New(db)
}

func TestUpdateApplicationStatus_Routing(t *testing.T) {
	st := testStore(t)

	now := time.Now()
	require.NoError(t, st.CreateApplication(&models.ApplicationForm{
		ID:          "a1",
		Status:      "pending",
		SubmittedBy: "direct",
		SubmittedAt: &now,
	}))
	require.NoError(t, st.CreateKycDetail(&models.KycDetail{RowID: "k1", FirstName: "Kay", LastName: "Row"}))

	t.Run("plain id targets application_form", func(t *testing.T) {
		require.NoError(t, st.UpdateApplicationStatus("a1", "approved"))
		app, err := st.GetApplication("a1")
		require.NoError(t, err)
		assert.Equal(t, "approved", app.Status)
	})

	t.Run("prefixed id targets kyc_details", func(t *testing.T) {
		require.NoError(t, st.UpdateApplicationStatus("kyc-k1", "turn-in"))
		rows, err := st.FetchKycDetails()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "turn-in", rows[0].Status)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		err := st.UpdateApplicationStatus("missing", "approved")
		assert.True(t, IsNotFound(err))

		err = st.UpdateApplicationStatus("kyc-missing", "approved")
		assert.True(t, IsNotFound(err))
	})
}

func TestUpdateUser_FieldRestriction(t *testing.T) {
	st := testStore(t)

	require.NoError(t, st.CreateUser(&models.User{
		Name:     "Jane",
		Email:    "jane@agency.test",
		Role:     models.RoleAgent,
		Password: "hashed-secret",
		BankCodes: []models.BankCode{
			{Bank: "BDO", Code: "BDO-1", Position: 0},
		},
	}))

	updated, err := st.UpdateUser("jane@agency.test", "Jane Cruz", models.RoleModerator, []models.BankCode{
		{Bank: "RCBC", Code: "RC-9"},
		{Bank: "BDO", Code: "BDO-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Cruz", updated.Name)
	assert.Equal(t, models.RoleModerator, updated.Role)

	// Email and password survive the update untouched.
	fresh, err := st.GetUserByEmail("jane@agency.test")
	require.NoError(t, err)
	assert.Equal(t, "hashed-secret", fresh.Password)
	require.Len(t, fresh.BankCodes, 2)

	// Bank codes keep their entry order.
	assert.Equal(t, "RC-9", fresh.BankCodes[0].Code)
	assert.Equal(t, "BDO-2", fresh.BankCodes[1].Code)
}

func TestUpdateUser_UnknownEmail(t *testing.T) {
	st := testStore(t)
	_, err := st.UpdateUser("nobody@agency.test", "Nobody", models.RoleAgent, nil)
	assert.True(t, IsNotFound(err))
}

func TestDeleteUser(t *testing.T) {
	st := testStore(t)

	require.NoError(t, st.CreateUser(&models.User{
		Name:     "Jane",
		Email:    "jane@agency.test",
		Role:     models.RoleAgent,
		Password: "x",
		BankCodes: []models.BankCode{
			{Bank: "BDO", Code: "BDO-1"},
		},
	}))

	require.NoError(t, st.DeleteUser("jane@agency.test"))

	_, err := st.GetUserByEmail("jane@agency.test")
	assert.True(t, IsNotFound(err))

	users, err := st.ListUsers()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestListUsers_NewestFirst(t *testing.T) {
	st := testStore(t)

	first := models.User{Name: "First", Email: "first@agency.test", Role: models.RoleAgent, Password: "x"}
	require.NoError(t, st.CreateUser(&first))

	second := models.User{Name: "Second", Email: "second@agency.test", Role: models.RoleAgent, Password: "x"}
	second.CreatedAt = time.Now().Add(time.Minute)
	require.NoError(t, st.CreateUser(&second))

	users, err := st.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "second@agency.test", users[0].Email)
}
