package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the database used by the backend.
var DB *gorm.DB

var pluralIES = regexp.MustCompile("ies$")

// Connect opens the SQLite database at path and migrates the schema.
func Connect(path string) error {
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	return open(sqlite.Open(dsn), true)
}

// ConnectPostgres opens the PostgreSQL database described by dsn and migrates the schema.
func ConnectPostgres(dsn string) error {
	return open(postgres.Open(dsn), false)
}

func open(dialector gorm.Dialector, singleConnection bool) error {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite only supports one writer. A single connection prevents SQLITE_BUSY errors.
	if singleConnection {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	err = registerCallbacks(db)
	if err != nil {
		return err
	}

	// Set the exported variable
	DB = db

	return nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		register func(string, func(*gorm.DB)) error
		name     string
		fn       func(*gorm.DB)
	}{
		{db.Callback().Query().After("*").Register, "pennywise:after_query", queryCallback},
		{db.Callback().Create().After("*").Register, "pennywise:after_create", createUpdateCallback},
		{db.Callback().Update().After("*").Register, "pennywise:after_update", createUpdateCallback},
		{db.Callback().Delete().After("*").Register, "pennywise:after_delete", generalCallback},
		{db.Callback().Row().After("*").Register, "pennywise:after_row", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.register(c.name, c.fn); err != nil {
			return fmt.Errorf("could not register callback %s: %w", c.name, err)
		}
	}

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		name = pluralIES.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimSuffix(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
		return
	}

	generalCallback(db)
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()

	// E-Mail addresses identify users and must be unique
	if strings.Contains(msg, "UNIQUE constraint failed: users.email") || strings.Contains(msg, "idx_users_email") {
		db.Error = ErrEmailInUse
		return
	}

	// One budget per user and month
	if strings.Contains(msg, "UNIQUE constraint failed: budgets.owner_id, budgets.month") || strings.Contains(msg, "budget_owner_month") {
		db.Error = ErrBudgetMonthNotUnique
		return
	}

	if strings.Contains(msg, "FOREIGN KEY constraint failed") || strings.Contains(msg, "violates foreign key constraint") {
		db.Error = ErrReferenceInvalid
		return
	}

	generalCallback(db)
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(User{}, Expense{}, Budget{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
