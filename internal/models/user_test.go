package models_test

import (
	"github.com/pennywise-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestUserEmailNormalized() {
	user := suite.createTestUser(models.User{Name: " Ada ", Email: "  Ada@Example.COM "})

	assert.Equal(suite.T(), "ada@example.com", user.Email)
	assert.Equal(suite.T(), "Ada", user.Name)

	found, err := models.FindUserByEmail(models.DB, "ADA@example.com")
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), user.ID, found.ID)
}

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	_ = suite.createTestUser(models.User{Email: "grace@example.com"})

	err := models.DB.Create(&models.User{Email: "Grace@example.com"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrEmailInUse)
}

func (suite *TestSuiteStandard) TestUserInvalidEmail() {
	err := models.DB.Create(&models.User{Email: "not-an-address"}).Error

	var validationErr *models.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Equal(suite.T(), "email", validationErr.Field)
}

func (suite *TestSuiteStandard) TestFindUserNotFound() {
	_, err := models.FindUserByEmail(models.DB, "nobody@example.com")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	_, err := models.FindUserByEmail(models.DB, "nobody@example.com")
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
